package components

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-fieldsync/pkg/model"
)

// RowBinding is what a page-supplied row template needs filled in to behave
// like a live row.
type RowBinding struct {
	SelectClass string
	InputClass  string
	RemoveClass string

	SelectID  string
	InputID   string
	RemoveID  string
	InputName string
	Value     string
	Options   []model.OptionState
}

// BindRow copies markup into buf, giving the marker elements their row ids,
// the value input its name and value, and the name selector a placeholder
// followed by the row's options. Everything else is written unchanged.
func BindRow(buf *bytes.Buffer, markup string, binding RowBinding) error {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	inSelect := false
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			if err := tokenizer.Err(); err != io.EOF {
				return fmt.Errorf("components: bind row: %w", err)
			}
			if inSelect {
				writeRowOptions(buf, binding.Options)
				buf.WriteString("</select>")
			}
			return nil
		}
		raw := tokenizer.Raw()

		if inSelect {
			if tt == html.EndTagToken && tokenizer.Token().DataAtom == atom.Select {
				writeRowOptions(buf, binding.Options)
				buf.Write(raw)
				inSelect = false
			}
			continue
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			buf.Write(raw)
			continue
		}

		token := tokenizer.Token()
		switch {
		case hasClass(token, binding.SelectClass):
			setAttr(&token, "id", binding.SelectID)
			buf.WriteString(token.String())
			if tt == html.StartTagToken && token.DataAtom == atom.Select {
				inSelect = true
			}
		case hasClass(token, binding.InputClass):
			setAttr(&token, "id", binding.InputID)
			setAttr(&token, "name", binding.InputName)
			setAttr(&token, "value", binding.Value)
			buf.WriteString(token.String())
		case hasClass(token, binding.RemoveClass):
			setAttr(&token, "id", binding.RemoveID)
			buf.WriteString(token.String())
		default:
			buf.Write(raw)
		}
	}
}

func writeRowOptions(buf *bytes.Buffer, options []model.OptionState) {
	buf.WriteString(`<option value="">Select field</option>`)
	for _, state := range options {
		fmt.Fprintf(buf, `<option value="%s"`, Attr(state.Value))
		if state.Selected {
			buf.WriteString(" selected")
		}
		if state.Disabled {
			buf.WriteString(" disabled")
		}
		fmt.Fprintf(buf, `>%s</option>`, Text(state.DisplayLabel()))
	}
}

func hasClass(token html.Token, class string) bool {
	if class == "" {
		return false
	}
	for _, attr := range token.Attr {
		if attr.Key == "class" && slices.Contains(strings.Fields(attr.Val), class) {
			return true
		}
	}
	return false
}

func setAttr(token *html.Token, key, value string) {
	for i := range token.Attr {
		if token.Attr[i].Key == key {
			token.Attr[i].Val = value
			return
		}
	}
	token.Attr = append(token.Attr, html.Attribute{Key: key, Val: value})
}
