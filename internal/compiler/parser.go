package compiler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/aretw0/ntm/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// headerLines is the number of header records in the course format:
// name[,k], states, input alphabet, tape alphabet, start, accept, reject.
const headerLines = 7

// Parser is responsible for converting raw bytes into a Machine.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes data in the given format and validates the resulting machine.
func (p *Parser) Parse(data []byte, format domain.Format) (*domain.Machine, error) {
	spec, err := p.ParseSpec(data, format)
	if err != nil {
		return nil, err
	}
	return domain.NewMachine(spec)
}

// ParseSpec decodes data without validating cross references.
func (p *Parser) ParseSpec(data []byte, format domain.Format) (domain.MachineSpec, error) {
	switch format {
	case domain.FormatYAML:
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.MachineSpec{}, definitionError("", 0, "failed to parse yaml: %v", err)
		}
		return decodeDocument(raw)
	case domain.FormatJSON:
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return domain.MachineSpec{}, definitionError("", 0, "failed to parse json: %v", err)
		}
		return decodeDocument(raw)
	case domain.FormatTM, "":
		return parseTM(data)
	default:
		return domain.MachineSpec{}, fmt.Errorf("unsupported machine format %q", format)
	}
}

func definitionError(machine string, line int, format string, args ...any) error {
	return &domain.MachineDefinitionError{Machine: machine, Line: line, Reason: fmt.Sprintf(format, args...)}
}

// parseTM reads the comma separated course format.
// Blank lines and lines starting with '#' are ignored. A transition line holds
// from, k read symbols, to, k write symbols and k moves; the moves may be omitted,
// in which case every head moves right.
func parseTM(data []byte) (domain.MachineSpec, error) {
	var spec domain.MachineSpec

	r := csv.NewReader(bytes.NewReader(data))
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	n := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return spec, definitionError(spec.Name, 0, "%v", err)
		}
		line, _ := r.FieldPos(0)
		fields := trimFields(record)
		if len(fields) == 0 {
			continue
		}

		switch n {
		case 0:
			spec.Name = fields[0]
			spec.Tapes = 1
			if len(fields) > 1 {
				k, err := strconv.Atoi(fields[1])
				if err != nil || k < 1 {
					return spec, definitionError(spec.Name, line, "invalid tape count %q", fields[1])
				}
				spec.Tapes = k
			}
		case 1:
			spec.States = fields
		case 2:
			spec.InputAlphabet = toSymbols(fields)
		case 3:
			spec.TapeAlphabet = toSymbols(fields)
		case 4:
			spec.Start = fields[0]
		case 5:
			spec.Accept = fields[0]
		case 6:
			spec.Reject = fields[0]
		default:
			rule, err := parseRuleFields(fields, spec.Tapes)
			if err != nil {
				return spec, definitionError(spec.Name, line, "%v", err)
			}
			spec.Rules = append(spec.Rules, rule)
		}
		n++
	}

	if n < headerLines {
		return spec, definitionError(spec.Name, 0, "missing header sections: expected %d, found %d", headerLines, n)
	}
	return spec, nil
}

// parseRuleFields builds a rule for a k-tape machine from its fields.
func parseRuleFields(fields []string, k int) (domain.Rule, error) {
	var moves []string
	switch len(fields) {
	case 2 + 3*k:
		moves = fields[2+2*k:]
	case 2 + 2*k:
		moves = make([]string, k)
		for i := range moves {
			moves[i] = string(domain.MoveRight)
		}
	default:
		return domain.Rule{}, fmt.Errorf("transition has %d fields, expected %d", len(fields), 2+3*k)
	}

	rule := domain.Rule{
		From:  fields[0],
		Read:  toSymbols(fields[1 : 1+k]),
		To:    fields[1+k],
		Write: toSymbols(fields[2+k : 2+2*k]),
	}
	for _, m := range moves {
		mv, err := domain.ParseMove(m)
		if err != nil {
			return domain.Rule{}, err
		}
		rule.Move = append(rule.Move, mv)
	}
	return rule, nil
}

// machineDocument is the structured (YAML/JSON) form of a machine.
// Tuples and alphabets may be written as lists or as comma separated strings.
type machineDocument struct {
	Name          string         `mapstructure:"name"`
	Tapes         int            `mapstructure:"tapes"`
	States        []string       `mapstructure:"states"`
	InputAlphabet []string       `mapstructure:"input_alphabet"`
	TapeAlphabet  []string       `mapstructure:"tape_alphabet"`
	Start         string         `mapstructure:"start"`
	Accept        string         `mapstructure:"accept"`
	Reject        string         `mapstructure:"reject"`
	Transitions   []ruleDocument `mapstructure:"transitions"`
}

type ruleDocument struct {
	From  string   `mapstructure:"from"`
	Read  []string `mapstructure:"read"`
	To    string   `mapstructure:"to"`
	Write []string `mapstructure:"write"`
	Move  []string `mapstructure:"move"`
}

func decodeDocument(raw map[string]any) (domain.MachineSpec, error) {
	var doc machineDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(compactRuleHook, commaListHook),
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return domain.MachineSpec{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return domain.MachineSpec{}, definitionError("", 0, "failed to decode machine: %v", err)
	}

	spec := domain.MachineSpec{
		Name:          doc.Name,
		Tapes:         doc.Tapes,
		States:        doc.States,
		InputAlphabet: toSymbols(doc.InputAlphabet),
		TapeAlphabet:  toSymbols(doc.TapeAlphabet),
		Start:         doc.Start,
		Accept:        doc.Accept,
		Reject:        doc.Reject,
	}
	for i, rd := range doc.Transitions {
		rule := domain.Rule{
			From:  rd.From,
			Read:  toSymbols(rd.Read),
			To:    rd.To,
			Write: toSymbols(rd.Write),
		}
		if len(rd.Move) == 0 {
			for range rd.Read {
				rule.Move = append(rule.Move, domain.MoveRight)
			}
		}
		for _, m := range rd.Move {
			mv, err := domain.ParseMove(m)
			if err != nil {
				return spec, definitionError(spec.Name, 0, "transition %d: %v", i+1, err)
			}
			rule.Move = append(rule.Move, mv)
		}
		spec.Rules = append(spec.Rules, rule)
	}
	return spec, nil
}

var ruleDocumentType = reflect.TypeOf(ruleDocument{})

// compactRuleHook accepts a transition written as a single "from,read..,to,write..,move.." string.
func compactRuleHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != ruleDocumentType {
		return data, nil
	}
	fields := trimFields(strings.Split(data.(string), ","))
	if (len(fields)-2)%3 != 0 || len(fields) < 5 {
		return nil, fmt.Errorf("compact transition %q must have 2+3k fields", data)
	}
	k := (len(fields) - 2) / 3
	return map[string]any{
		"from":  fields[0],
		"read":  fields[1 : 1+k],
		"to":    fields[1+k],
		"write": fields[2+k : 2+2*k],
		"move":  fields[2+2*k:],
	}, nil
}

// commaListHook splits "a, b, c" into a list when a slice is expected.
func commaListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	s := data.(string)
	if s == "" {
		return []string{}, nil
	}
	return trimFields(strings.Split(s, ",")), nil
}

func trimFields(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func toSymbols(in []string) []domain.Symbol {
	if in == nil {
		return nil
	}
	out := make([]domain.Symbol, len(in))
	for i, s := range in {
		out[i] = domain.Symbol(s)
	}
	return out
}
