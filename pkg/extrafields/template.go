package extrafields

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// CheckTemplate verifies that markup contains exactly one element carrying
// each of the select, input and remove marker classes.
func CheckTemplate(markup, selectClass, inputClass, removeClass string) error {
	counts := map[string]int{selectClass: 0, inputClass: 0, removeClass: 0}

	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			if err := tokenizer.Err(); err != io.EOF {
				return fmt.Errorf("%w: %v", ErrTemplateIncomplete, err)
			}
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		token := tokenizer.Token()
		for _, attr := range token.Attr {
			if attr.Key != "class" {
				continue
			}
			classes := strings.Fields(attr.Val)
			for marker := range counts {
				if slices.Contains(classes, marker) {
					counts[marker]++
				}
			}
		}
	}

	for _, marker := range []string{selectClass, inputClass, removeClass} {
		if counts[marker] != 1 {
			return fmt.Errorf("%w: expected one %q element, found %d", ErrTemplateIncomplete, marker, counts[marker])
		}
	}
	return nil
}
