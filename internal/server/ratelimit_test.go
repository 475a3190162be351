package server

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestMultiLimiterAllow(t *testing.T) {
	ml := newMultiLimiter(rate.Limit(2), 2, time.Minute)
	key := "test"
	if !ml.allow(key) {
		t.Fatal("first allow should pass")
	}
	if !ml.allow(key) {
		t.Fatal("second allow should pass")
	}
	if ml.allow(key) {
		t.Fatal("third allow should be rate limited")
	}
}

func TestMultiLimiterKeysAreIndependent(t *testing.T) {
	ml := newMultiLimiter(rate.Limit(1), 1, time.Minute)
	if !ml.allow("a") {
		t.Fatal("first key should pass")
	}
	if ml.allow("a") {
		t.Fatal("first key should now be limited")
	}
	if !ml.allow("b") {
		t.Fatal("second key has its own bucket")
	}
}
