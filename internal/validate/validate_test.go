package validate

import (
	"testing"

	"github.com/google/uuid"
)

func TestResult_Empty(t *testing.T) {
	var r Result
	if !r.Valid() {
		t.Fatal("expected empty result to be valid")
	}
	if len(r.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", r.Errors())
	}
}

func TestRequireUUID_Valid(t *testing.T) {
	var r Result
	want := uuid.New()

	got := r.RequireUUID("id", want.String())
	if !r.Valid() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRequireUUID_Missing(t *testing.T) {
	var r Result
	r.RequireUUID("id", "")

	if r.Valid() {
		t.Fatal("expected validation failure")
	}
	errs := r.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Field != "id" || errs[0].Code != CodeRequired {
		t.Fatalf("unexpected error record: %+v", errs[0])
	}
	if errs[0].Message == "" {
		t.Fatal("expected a message")
	}
}

func TestRequireUUID_Malformed(t *testing.T) {
	var r Result
	r.RequireUUID("friend_id", "not-a-uuid")

	if r.Valid() {
		t.Fatal("expected validation failure")
	}
	if r.Errors()[0].Code != CodeInvalidUUID {
		t.Fatalf("expected code %q, got %q", CodeInvalidUUID, r.Errors()[0].Code)
	}
}

func TestRequireUUID_AccumulatesPerField(t *testing.T) {
	var r Result
	r.RequireUUID("task_id", "")
	r.RequireUUID("assignee_id", "")

	errs := r.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected one error per missing field, got %d", len(errs))
	}
	if errs[0].Field != "task_id" || errs[1].Field != "assignee_id" {
		t.Fatalf("unexpected fields: %+v", errs)
	}
}

func TestOptionalUUID(t *testing.T) {
	var r Result

	if got := r.OptionalUUID("party_a", ""); got != nil {
		t.Fatalf("expected nil for absent value, got %v", got)
	}
	if !r.Valid() {
		t.Fatalf("absent optional must not error: %v", r.Errors())
	}

	want := uuid.New()
	got := r.OptionalUUID("party_a", want.String())
	if got == nil || *got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	r.OptionalUUID("party_b", "garbage")
	if r.Valid() {
		t.Fatal("expected malformed optional uuid to error")
	}
}

func TestOptionalBool(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    *bool
		wantErr bool
	}{
		{name: "nil", value: nil, want: nil},
		{name: "true bool", value: true, want: boolPtr(true)},
		{name: "false bool", value: false, want: boolPtr(false)},
		{name: "true string", value: "true", want: boolPtr(true)},
		{name: "false string", value: "false", want: boolPtr(false)},
		{name: "numeric string", value: "1", want: boolPtr(true)},
		{name: "empty string", value: "", want: nil},
		{name: "bad string", value: "maybe", wantErr: true},
		{name: "number", value: float64(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Result
			got := r.OptionalBool("accepted", tt.value)

			if tt.wantErr {
				if r.Valid() {
					t.Fatal("expected validation failure")
				}
				if r.Errors()[0].Code != CodeInvalidBool {
					t.Fatalf("expected code %q, got %q", CodeInvalidBool, r.Errors()[0].Code)
				}
				return
			}
			if !r.Valid() {
				t.Fatalf("unexpected errors: %v", r.Errors())
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("expected %v, got %v", *tt.want, *got)
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }
