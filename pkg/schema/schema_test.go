package schema_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formbind/pkg/schema"
)

func signUpSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New().
		Field("username").Required("Username is required").Max(100, "").
		Field("email").Required("Email is required").Email("Invalid email").
		Field("password").Required("Password is required").Min(8, "Password must have than 8 characters").Secret().
		Field("confirmPassword").Required("Password confirmation is required").Secret().
		Refine(schema.FieldsEqual("password", "confirmPassword"), "confirmPassword", "Password do not match").
		Build()
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return s
}

func validSignUp() schema.Values {
	return schema.Values{
		"username":        "johndoe",
		"email":           "john@example.com",
		"password":        "s3cretpass",
		"confirmPassword": "s3cretpass",
	}
}

func TestValidate_SignInScenario(t *testing.T) {
	s := schema.New().
		Field("email").Required("Email is required").Email("Invalid email").
		Field("password").Required("Password is required").Min(8, "Password must have than 8 characters").
		MustBuild()

	got := s.Validate(context.Background(), schema.Values{"email": "", "password": "abc"})

	want := map[string]string{
		"email":    "Email is required",
		"password": "Password must have than 8 characters",
	}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got.Valid() {
		t.Fatalf("expected invalid result")
	}
}

func TestValidate_FirstFailingCheckWins(t *testing.T) {
	s := schema.New().
		Field("code").Required("code required").Min(4, "too short").Pattern(`^[0-9]+$`, "digits only").
		MustBuild()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "", want: "code required"},
		{name: "short and not digits", value: "ab", want: "too short"},
		{name: "long but not digits", value: "abcd", want: "digits only"},
		{name: "valid", value: "1234", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Validate(context.Background(), schema.Values{"code": tt.value})
			got, _ := res.Error("code")
			if got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidate_ValidInputYieldsShapedValue(t *testing.T) {
	s := signUpSchema(t)
	input := validSignUp()
	input["extra"] = "dropped"

	got := s.Validate(context.Background(), input)
	if !got.Valid() {
		t.Fatalf("expected valid result, got %v", got.Errors)
	}
	if diff := cmp.Diff(validSignUp(), got.Value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if _, ok := input["extra"]; !ok {
		t.Fatalf("input must not be mutated")
	}
}

func TestValidate_RefinementTargetsConfirmPassword(t *testing.T) {
	s := signUpSchema(t)
	input := validSignUp()
	input["confirmPassword"] = "different1"

	got := s.Validate(context.Background(), input)
	want := map[string]string{"confirmPassword": "Password do not match"}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RefinementRunsAlongsideFieldFailures(t *testing.T) {
	s := signUpSchema(t)
	input := validSignUp()
	input["password"] = "short"
	input["confirmPassword"] = "other"

	got := s.Validate(context.Background(), input)
	want := map[string]string{
		"password":        "Password must have than 8 characters",
		"confirmPassword": "Password do not match",
	}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RefinementOverwritesFieldMessage(t *testing.T) {
	s := signUpSchema(t)
	input := validSignUp()
	input["confirmPassword"] = ""

	got := s.Validate(context.Background(), input)
	if msg, _ := got.Error("confirmPassword"); msg != "Password do not match" {
		t.Fatalf("want refinement message, got %q", msg)
	}
}

func TestValidate_LastRefinementWinsForSharedTarget(t *testing.T) {
	s := schema.New().
		Field("a").
		Field("b").
		Refine(func(schema.Values) bool { return false }, "b", "first").
		Refine(func(schema.Values) bool { return false }, "b", "second").
		MustBuild()

	got := s.Validate(context.Background(), schema.Values{"a": "", "b": ""})
	if msg, _ := got.Error("b"); msg != "second" {
		t.Fatalf("want last refinement message, got %q", msg)
	}
}

func TestValidate_ShapeFailureSkipsRefinements(t *testing.T) {
	s := signUpSchema(t)
	input := validSignUp()
	input["username"] = 42
	input["confirmPassword"] = "mismatch!"

	got := s.Validate(context.Background(), input)
	want := map[string]string{"username": "Expected string, received number"}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if v, _ := schema.Lookup(got.Value, "email"); v != "john@example.com" {
		t.Fatalf("well-shaped fields must stay in the value, got %v", got.Value)
	}
}

func TestValidate_MissingKeyUsesRequiredMessage(t *testing.T) {
	s := signUpSchema(t)
	input := validSignUp()
	delete(input, "email")

	got := s.Validate(context.Background(), input)
	want := map[string]string{"email": "Email is required"}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_MaxDefaultMessage(t *testing.T) {
	s := signUpSchema(t)
	input := validSignUp()
	input["username"] = strings.Repeat("x", 101)

	got := s.Validate(context.Background(), input)
	if msg, _ := got.Error("username"); msg != "String must contain at most 100 character(s)" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestValidate_IsPure(t *testing.T) {
	s := signUpSchema(t)
	input := schema.Values{"username": "", "email": "nope", "password": "x", "confirmPassword": "y"}

	first := s.Validate(context.Background(), input)
	second := s.Validate(context.Background(), input)
	if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("results differ (-first +second):\n%s", diff)
	}
}

func TestValidate_NestedPaths(t *testing.T) {
	s := schema.New().
		Field("account.email").Required("Email is required").Email("").
		Field("account.name").Required("").
		MustBuild()

	got := s.Validate(context.Background(), schema.Values{
		"account": map[string]any{"email": "bad", "name": "Ada"},
	})
	want := map[string]string{"account.email": "Invalid email"}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	got = s.Validate(context.Background(), schema.Values{"account": "oops"})
	want = map[string]string{
		"account.email": "Expected object, received string",
		"account.name":  "Expected object, received string",
	}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_RejectsContractViolations(t *testing.T) {
	tests := []struct {
		name    string
		builder func() *schema.Builder
		wantErr string
	}{
		{
			name: "undeclared refinement target",
			builder: func() *schema.Builder {
				return schema.New().Field("a").Done().Refine(func(schema.Values) bool { return true }, "b", "x")
			},
			wantErr: `refinement targets undeclared field "b"`,
		},
		{
			name: "duplicate field",
			builder: func() *schema.Builder {
				return schema.New().Field("a").Field("a").Done()
			},
			wantErr: `field "a" declared twice`,
		},
		{
			name: "nested under leaf",
			builder: func() *schema.Builder {
				return schema.New().Field("a").Field("a.b").Done()
			},
			wantErr: `field "a.b" is nested under leaf field "a"`,
		},
		{
			name: "empty segment",
			builder: func() *schema.Builder {
				return schema.New().Field("a..b").Done()
			},
			wantErr: "empty segment",
		},
		{
			name:    "no fields",
			builder: schema.New,
			wantErr: "no fields declared",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder().Build()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestMustBuild_PanicsOnUndeclaredTarget(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	schema.New().Field("a").Refine(func(schema.Values) bool { return true }, "missing", "x").MustBuild()
}

func TestSchema_Defaults(t *testing.T) {
	s := schema.New().Field("email").Field("profile.name").MustBuild()
	want := schema.Values{"email": "", "profile": map[string]any{"name": ""}}
	if diff := cmp.Diff(want, s.Defaults()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email", "profile.name"}, s.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLengthChecks_CountUTF16Units(t *testing.T) {
	s := schema.New().
		Field("password").Min(8, "too short").
		Field("nickname").Max(3, "too long").
		MustBuild()

	tests := []struct {
		name  string
		input schema.Values
		want  map[string]string
	}{
		{
			name:  "four astral characters reach eight units",
			input: schema.Values{"password": "😀😀😀😀", "nickname": "abc"},
			want:  map[string]string{},
		},
		{
			name:  "accented letters count once",
			input: schema.Values{"password": "ééééééé", "nickname": "été"},
			want:  map[string]string{"password": "too short"},
		},
		{
			name:  "two astral characters exceed three units",
			input: schema.Values{"password": "12345678", "nickname": "😀😀"},
			want:  map[string]string{"nickname": "too long"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Validate(context.Background(), tt.input)
			if diff := cmp.Diff(tt.want, got.Errors); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldsEqual_NestedObjects(t *testing.T) {
	equal := schema.FieldsEqual("account", "billing")

	same := schema.Values{
		"account": map[string]any{"city": "Lisbon"},
		"billing": map[string]any{"city": "Lisbon"},
	}
	if !equal(same) {
		t.Fatalf("expected equal nested objects")
	}

	different := schema.Values{
		"account": map[string]any{"city": "Lisbon"},
		"billing": map[string]any{"city": "Porto"},
	}
	if equal(different) {
		t.Fatalf("expected different nested objects")
	}
}

func TestRefinement_NestedObjectsDoNotPanic(t *testing.T) {
	s := schema.New().
		Field("account.city").
		Field("billing.city").
		Done().
		Refine(schema.FieldsEqual("account", "billing"), "billing.city", "Billing must match account").
		MustBuild()

	got := s.Validate(context.Background(), schema.Values{
		"account": map[string]any{"city": "Lisbon"},
		"billing": map[string]any{"city": "Porto"},
	})
	want := map[string]string{"billing.city": "Billing must match account"}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
