package page

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFormFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contact.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const goodForm = `
id: contact
title: Get in touch
submit_label: Send message
fields:
  - name: name
    label: Your name
    type: text
    required: true
  - name: company
    label: Company
    type: text
  - name: email
    label: Email
    type: email
    required: true
  - name: phone
    label: Phone
    type: tel
  - name: message
    label: Message
    type: textarea
    required: true
`

func TestLoadFormDef_OK(t *testing.T) {
	fd, err := LoadFormDef(writeFormFile(t, goodForm))
	if err != nil {
		t.Fatalf("LoadFormDef: %v", err)
	}
	if fd.ID != "contact" || len(fd.Fields) != 5 {
		t.Fatalf("parsed %q with %d fields", fd.ID, len(fd.Fields))
	}
	if fd.SubmitLabel != "Send message" {
		t.Fatalf("SubmitLabel = %q", fd.SubmitLabel)
	}
	if got := fd.Fields[0].Anchor(); got != "field-name" {
		t.Fatalf("Anchor() = %q", got)
	}
}

func TestLoadFormDef_DefaultSubmitLabel(t *testing.T) {
	body := strings.Replace(goodForm, "submit_label: Send message\n", "", 1)
	fd, err := LoadFormDef(writeFormFile(t, body))
	if err != nil {
		t.Fatalf("LoadFormDef: %v", err)
	}
	if fd.SubmitLabel != "Send" {
		t.Fatalf("SubmitLabel = %q, want default", fd.SubmitLabel)
	}
}

func TestLoadFormDef_Rejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing id",
			body: "fields:\n  - name: name\n    label: L\n    type: text\n",
			want: "missing required 'id'",
		},
		{
			name: "no fields",
			body: "id: contact\n",
			want: "must declare 'fields'",
		},
		{
			name: "unknown field",
			body: "id: contact\nfields:\n  - name: fax\n    label: Fax\n    type: text\n",
			want: "unknown field",
		},
		{
			name: "duplicate field",
			body: "id: contact\nfields:\n" +
				"  - {name: name, label: A, type: text}\n" +
				"  - {name: name, label: B, type: text}\n",
			want: "duplicate field",
		},
		{
			name: "validated field omitted",
			body: "id: contact\nfields:\n" +
				"  - {name: name, label: A, type: text}\n" +
				"  - {name: email, label: B, type: email}\n",
			want: "required field 'message'",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFormDef(writeFormFile(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want containing %q", err, tc.want)
			}
		})
	}
}
