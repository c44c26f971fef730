package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/limansky/rednext/internal/schema"
)

// promptSchema interactively collects the field definitions for a new
// database. An empty field name finishes the schema.
func promptSchema() (schema.Schema, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("Define the fields (empty name to finish).")

	var fields []schema.Field
	for {
		name, err := prompt(line, "field name: ")
		if err != nil {
			return schema.Schema{}, err
		}
		if name == "" {
			break
		}

		kind, err := promptKind(line)
		if err != nil {
			return schema.Schema{}, err
		}

		required, err := prompt(line, "required [y/N]: ")
		if err != nil {
			return schema.Schema{}, err
		}

		fields = append(fields, schema.Field{
			Name:     name,
			Kind:     kind,
			Required: strings.EqualFold(required, "y") || strings.EqualFold(required, "yes"),
		})
	}

	return schema.New(fields)
}

func promptKind(line *liner.State) (schema.Kind, error) {
	for {
		raw, err := prompt(line, "kind [text/integer/real/boolean] (text): ")
		if err != nil {
			return 0, err
		}
		if raw == "" {
			return schema.Text, nil
		}

		kind, err := schema.ParseKind(strings.ToLower(raw))
		if err != nil {
			fmt.Println(err)
			continue
		}
		return kind, nil
	}
}

// promptValues interactively collects one value per schema field. When
// current is non-nil its formatted values are offered as editable
// suggestions. Coercion failures re-prompt the same field.
func promptValues(s schema.Schema, current schema.Values) (schema.Values, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	values := make(schema.Values, len(s.Fields))
	for _, f := range s.Fields {
		label := fmt.Sprintf("%s (%s", f.Name, f.Kind)
		if f.Required {
			label += ", required"
		}
		label += "): "

		for {
			var raw string
			var err error
			if current != nil {
				raw, err = line.PromptWithSuggestion(label, current[f.Name].Format(), -1)
			} else {
				raw, err = line.Prompt(label)
			}
			if err != nil {
				return nil, promptErr(err)
			}

			v, err := schema.Coerce(strings.TrimSpace(raw), f.Kind)
			if err != nil {
				fmt.Println(err)
				continue
			}
			values[f.Name] = v
			break
		}
	}

	return values, nil
}

func prompt(line *liner.State, label string) (string, error) {
	raw, err := line.Prompt(label)
	if err != nil {
		return "", promptErr(err)
	}
	return strings.TrimSpace(raw), nil
}

func promptErr(err error) error {
	if err == liner.ErrPromptAborted || err == io.EOF {
		return fmt.Errorf("aborted")
	}
	return err
}
