package redis

import "testing"

func TestKey(t *testing.T) {
	if got := Key("lexfreq:stem:", "russian", "книга"); got != "lexfreq:stem:russian:книга" {
		t.Errorf("Key = %q", got)
	}
}
