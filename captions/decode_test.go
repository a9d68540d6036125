package captions

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "named entities",
			in:   "It&rsquo;s a test &amp; more",
			want: "It's a test & more",
		},
		{
			// Typographic quote entities map to plain ASCII, not the
			// Unicode curly forms.
			name: "smart quotes become ascii",
			in:   "&lsquo;a&rsquo; &ldquo;b&rdquo;",
			want: "'a' \"b\"",
		},
		{
			name: "decimal references",
			in:   "&#72;&#101;&#108;&#108;&#111;",
			want: "Hello",
		},
		{
			name: "hex references",
			in:   "&#x48;&#x65;&#x6C;&#x6C;&#x6F;",
			want: "Hello",
		},
		{
			name: "hex uppercase marker",
			in:   "&#X48;i",
			want: "Hi",
		},
		{
			// The named pass turns &amp;#39; into &#39;, which the numeric
			// pass then resolves. Such inputs have no fixed point.
			name: "double encoded apostrophe",
			in:   "don&amp;#39;t",
			want: "don't",
		},
		{
			name: "quotes and nbsp",
			in:   "&ldquo;a&rdquo;&nbsp;&quot;b&quot;",
			want: "\"a\" \"b\"",
		},
		{
			name: "malformed entity left alone",
			in:   "a &notreal; b &# c &#x; d",
			want: "a &notreal; b &# c &#x; d",
		},
		{
			name: "out of range reference left alone",
			in:   "x&#99999999999;y",
			want: "x&#99999999999;y",
		},
		{
			name: "plain text untouched",
			in:   "nothing to decode here",
			want: "nothing to decode here",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.in); got != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeIdempotent(t *testing.T) {
	inputs := []string{
		"It&rsquo;s a test &amp; more",
		"&#72;&#101;&#108;&#108;&#111;",
		"&#x48;&#x65;&#x6C;&#x6C;&#x6F;",
		"plain text",
		"a &lt; b &gt; c",
	}

	for _, in := range inputs {
		once := Decode(in)
		twice := Decode(once)
		if once != twice {
			t.Errorf("Decode not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
