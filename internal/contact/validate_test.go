// internal/contact/validate_test.go
//
// Unit-tests for the contact form validator.
//
// Context
// -------
// Validate is a pure function, so the tests are plain table checks: raw
// inputs in, expected per-field messages out.  Edge rows pin the boundary
// lengths (2-character name, 10-character message) and the permissive email
// pattern.
//
//------------------------------------------------------------------------------

package contact

import (
	"net/url"
	"reflect"
	"testing"
)

func TestValidate_AllFieldsValid(t *testing.T) {
	in := Input{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "Hello, I would like a quote.",
	}

	res := Validate(in)

	if !res.Valid {
		t.Fatalf("Valid = false, want true; errors: %v", res.FieldErrors)
	}
	if len(res.FieldErrors) != 0 {
		t.Fatalf("FieldErrors = %v, want empty", res.FieldErrors)
	}
	if res.FirstError() != "" {
		t.Fatalf("FirstError() = %q, want empty", res.FirstError())
	}
}

func TestValidate_FieldRules(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want map[string]string
	}{
		{
			name: "missing name",
			in:   Input{Name: "", Email: "a@b.com", Message: "1234567890"},
			want: map[string]string{FieldName: MsgRequired},
		},
		{
			name: "all three fail independently",
			in:   Input{Name: "A", Email: "bad-email", Message: "short"},
			want: map[string]string{
				FieldName:    MsgNameShort,
				FieldEmail:   MsgEmailInvalid,
				FieldMessage: MsgMessageShort,
			},
		},
		{
			name: "message exactly ten characters passes",
			in:   Input{Name: "Ana", Email: "ana@example.com", Message: "exactly10c"},
			want: map[string]string{},
		},
		{
			name: "name exactly two characters passes",
			in:   Input{Name: "Al", Email: "al@example.com", Message: "long enough text"},
			want: map[string]string{},
		},
		{
			name: "required precedes format on email",
			in:   Input{Name: "Ana", Email: "", Message: "long enough text"},
			want: map[string]string{FieldEmail: MsgRequired},
		},
		{
			name: "email without dot in domain",
			in:   Input{Name: "Ana", Email: "ana@example", Message: "long enough text"},
			want: map[string]string{FieldEmail: MsgEmailInvalid},
		},
		{
			name: "email with space rejected",
			in:   Input{Name: "Ana", Email: "ana @example.com", Message: "long enough text"},
			want: map[string]string{FieldEmail: MsgEmailInvalid},
		},
		{
			name: "one multibyte character name still too short",
			in:   Input{Name: "é", Email: "e@example.com", Message: "long enough text"},
			want: map[string]string{FieldName: MsgNameShort},
		},
		{
			name: "two multibyte character name passes",
			in:   Input{Name: "Éd", Email: "ed@example.com", Message: "long enough text"},
			want: map[string]string{},
		},
		{
			name: "four CJK character message still too short",
			in:   Input{Name: "Ana", Email: "ana@example.com", Message: "你好世界"},
			want: map[string]string{FieldMessage: MsgMessageShort},
		},
		{
			name: "ten CJK character message passes",
			in:   Input{Name: "Ana", Email: "ana@example.com", Message: "你好世界你好世界你好"},
			want: map[string]string{},
		},
		{
			name: "company and phone never validated",
			in: Input{
				Name: "Ana", Email: "ana@example.com", Message: "long enough text",
				Company: "", Phone: "not-a-phone",
			},
			want: map[string]string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.in)

			if got := len(res.FieldErrors) == 0; got != res.Valid {
				t.Fatalf("Valid = %v inconsistent with %d field errors", res.Valid, len(res.FieldErrors))
			}
			if !reflect.DeepEqual(res.FieldErrors, tc.want) {
				t.Fatalf("FieldErrors = %v, want %v", res.FieldErrors, tc.want)
			}
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	in := Input{Name: "A", Email: "bad-email", Message: "short"}

	first := Validate(in)
	second := Validate(in)

	if first.Valid != second.Valid || !reflect.DeepEqual(first.FieldErrors, second.FieldErrors) {
		t.Fatalf("repeat call diverged: %v vs %v", first, second)
	}
}

func TestFromValues_TrimsEveryField(t *testing.T) {
	in := FromValues(url.Values{
		FieldName:    {"  Ana  "},
		FieldCompany: {" Acme "},
		FieldEmail:   {" ana@example.com "},
		FieldPhone:   {" 555-0100 "},
		FieldMessage: {"  hello there, world  "},
	})

	want := Input{
		Name:    "Ana",
		Company: "Acme",
		Email:   "ana@example.com",
		Phone:   "555-0100",
		Message: "hello there, world",
	}
	if in != want {
		t.Fatalf("FromValues = %+v, want %+v", in, want)
	}
}

func TestFirstError_FormOrder(t *testing.T) {
	// Email and message both fail; name is fine.  The scroll target must be
	// the email field because it comes first on the form.
	res := Validate(Input{Name: "Ana", Email: "nope", Message: "x"})
	if got := res.FirstError(); got != FieldEmail {
		t.Fatalf("FirstError() = %q, want %q", got, FieldEmail)
	}
}
