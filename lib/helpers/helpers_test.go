package helpers

import "testing"

func TestEscapeHTML(t *testing.T) {
	if got := EscapeHTML(`<b>R&D > "stuff"</b>`); got != `&lt;b&gt;R&amp;D &gt; "stuff"&lt;/b&gt;` {
		t.Errorf("EscapeHTML = %q", got)
	}
}

func TestFormatCountUS(t *testing.T) {
	if got := FormatCountUS(1234567); got != "1,234,567" {
		t.Errorf("FormatCountUS = %q, want 1,234,567", got)
	}
}

func TestFormatBytesUS(t *testing.T) {
	if got := FormatBytesUS(2048); got != "2,048 bytes" {
		t.Errorf("FormatBytesUS = %q, want 2,048 bytes", got)
	}
	if got := FormatBytesUS(0); got != "0 bytes" {
		t.Errorf("FormatBytesUS = %q, want 0 bytes", got)
	}
}
