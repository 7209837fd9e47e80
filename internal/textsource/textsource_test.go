package textsource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type stubRunner struct {
	stdout  string
	stderr  string
	err     error
	gotName string
	gotArgs []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return []byte(s.stdout), []byte(s.stderr), s.err
}

func TestPlainTextExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("NUM: 4521\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := PlainText{}.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "NUM: 4521\n" {
		t.Errorf("got %q", got)
	}
}

func TestPDFTextInvocation(t *testing.T) {
	stub := &stubRunner{stdout: "page text"}
	p := NewPDFText("", stub)

	got, err := p.Extract(context.Background(), "/data/in/doc.pdf")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "page text" {
		t.Errorf("got %q", got)
	}
	if stub.gotName != "pdftotext" {
		t.Errorf("binary = %q, want default pdftotext", stub.gotName)
	}
	wantArgs := []string{"-layout", "-enc", "UTF-8", "-eol", "unix", "/data/in/doc.pdf", "-"}
	if !reflect.DeepEqual(stub.gotArgs, wantArgs) {
		t.Errorf("args = %v, want %v", stub.gotArgs, wantArgs)
	}
}

func TestPDFTextFailureIncludesStderr(t *testing.T) {
	stub := &stubRunner{stderr: "Syntax Error: couldn't read xref table", err: errors.New("exit status 1")}
	p := NewPDFText("pdftotext", stub)

	_, err := p.Extract(context.Background(), "broken.pdf")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, stub.err) {
		t.Errorf("error %v does not wrap the runner failure", err)
	}
	if !strings.Contains(err.Error(), "xref table") {
		t.Errorf("error %v drops the pdftotext stderr", err)
	}
}

func TestResolverByExtension(t *testing.T) {
	r := NewResolver("")

	if src, err := r.For("a/b/doc.TXT"); err != nil {
		t.Errorf("txt: %v", err)
	} else if _, ok := src.(PlainText); !ok {
		t.Errorf("txt resolved to %T", src)
	}

	if src, err := r.For("doc.pdf"); err != nil {
		t.Errorf("pdf: %v", err)
	} else if _, ok := src.(*PDFText); !ok {
		t.Errorf("pdf resolved to %T", src)
	}

	if _, err := r.For("image.png"); err == nil {
		t.Error("png should be rejected")
	}
	if _, err := r.For("noext"); err == nil {
		t.Error("extensionless path should be rejected")
	}
}
