package timetricks

import (
	"fmt"
	"testing"
	"time"
)

func ExampleWithinWeek() {
	t := time.Now()
	for i := 0; i < 8; i++ {
		fmt.Println(i, WithinWeek(t.Add(time.Duration(i)*24*time.Hour)))
	}
	// Output:
	// 0 true
	// 1 true
	// 2 true
	// 3 true
	// 4 true
	// 5 true
	// 6 true
	// 7 false
}

func TestDay(t *testing.T) {
	now := time.Now()
	if got := Day(now); got != "today" {
		t.Errorf("got %q, wanted today", got)
	}
	if got := Day(now.Add(24 * time.Hour)); got != "tomorrow" {
		t.Errorf("got %q, wanted tomorrow", got)
	}
	past := time.Date(1999, time.January, 5, 12, 0, 0, 0, time.Local)
	if got := Day(past); got != "01/05" {
		t.Errorf("got %q, wanted 01/05", got)
	}
}
