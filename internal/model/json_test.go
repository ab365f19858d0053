package model

import (
	"encoding/json"
	"testing"
)

func TestNumberDecodesQuotedAndBare(t *testing.T) {
	var e ProgressEntry
	if err := json.Unmarshal([]byte(`{"id":1,"weight":"175.5","bodyFatPercentage":18,"muscleMass":null,"notes":null,"entryDate":"2025-01-02T03:04:05Z"}`), &e); err != nil {
		t.Fatalf("decode progress entry: %v", err)
	}
	if e.Weight != 175.5 {
		t.Fatalf("expected weight 175.5, got %v", e.Weight)
	}
	if e.BodyFatPercentage == nil || *e.BodyFatPercentage != 18 {
		t.Fatalf("expected body fat 18, got %v", e.BodyFatPercentage)
	}
	if e.MuscleMass != nil || e.Notes != nil {
		t.Fatalf("expected nil optional fields, got %+v", e)
	}
}

func TestNumberRejectsGarbage(t *testing.T) {
	var n Number
	if err := json.Unmarshal([]byte(`"abc"`), &n); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNumberMarshalsAsBareNumber(t *testing.T) {
	b, err := json.Marshal(struct {
		W Number `json:"w"`
	}{W: 180})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"w":180}` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestTextAcceptsStringsAndNumbers(t *testing.T) {
	var ex []Exercise
	raw := `[{"name":"Squat","sets":3,"reps":"8-12"},{"name":"Plank","duration":"45 seconds","sets":null}]`
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		t.Fatalf("decode exercises: %v", err)
	}
	if ex[0].Sets != "3" || ex[0].Reps != "8-12" {
		t.Fatalf("unexpected first exercise: %+v", ex[0])
	}
	if ex[1].Duration != "45 seconds" || ex[1].Sets != "" {
		t.Fatalf("unexpected second exercise: %+v", ex[1])
	}
}
