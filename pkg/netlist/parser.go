package netlist

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/quantity"
)

type AnalysisType int

const (
	AnalysisOP AnalysisType = iota
	AnalysisDC
)

// NetlistData is a parsed netlist file: a title and one network per
// logical line.
type NetlistData struct {
	Title    string       // First line
	Networks []Network    // Networks in file order
	Verify   bool         // .verify was present
	Analysis AnalysisType // Analysis type
	DCParam struct {
		Node      string            // swept node, e.g. Source1
		Quantity  quantity.Quantity // swept quantity, E unless given
		Start     float64
		Stop      float64
		Increment float64
	}
}

type Network struct {
	Line int         // Line number where the expression starts
	Expr string      // Expression text after continuation joining
	Root device.Node // Built tree, names scoped to this network
}

var unitMap = map[string]float64{
	"T":   1e12,  // tera
	"G":   1e9,   // giga
	"meg": 1e6,   // mega
	"M":   1e6,   // mega
	"K":   1e3,   // kilo
	"k":   1e3,   // kilo
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

var spaces = regexp.MustCompile(`\s+`)

// Parse reads a netlist. The first line is the title, lines starting with
// '*' are comments, lines starting with '+' (or indented after one) continue
// the previous line, and every other line is a network expression.
func Parse(input string) (*NetlistData, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	netlistData := &NetlistData{}

	// Title or comment
	if scanner.Scan() {
		netlistData.Title = strings.TrimPrefix(scanner.Text(), "*")
		netlistData.Title = strings.TrimSpace(netlistData.Title)
	}

	var (
		currentLine      string
		currentStart     int
		continuationMode bool
		ended            bool
	)
	lineNo := 1

	flush := func() error {
		if currentLine == "" {
			return nil
		}
		err := parseLine(netlistData, currentStart, currentLine)
		if err == errEnd {
			ended = true
			err = nil
		}
		currentLine = ""
		continuationMode = false
		return err
	}

	for !ended && scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		// Empty line
		if len(line) == 0 {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		// Comment line
		if strings.HasPrefix(line, "*") {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		// Line continue
		if strings.HasPrefix(line, "+") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "+"))
			if currentLine != "" {
				currentLine += " " + line
			}
			continuationMode = true
			continue
		}

		// Indented line after a continuation
		if continuationMode && strings.HasPrefix(raw, " ") {
			if currentLine != "" {
				currentLine += " " + line
			}
			continue
		}

		// New line
		if err := flush(); err != nil {
			return nil, err
		}
		if ended {
			break
		}
		currentLine = line
		currentStart = lineNo
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading netlist: %w", err)
	}

	// Final line
	if !ended {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	return netlistData, nil
}

// errEnd stops reading at a .end command.
var errEnd = errors.New(".end")

func parseLine(netlistData *NetlistData, lineNo int, line string) error {
	line = spaces.ReplaceAllString(line, " ")

	if strings.HasPrefix(line, ".") {
		return parseDotOperator(netlistData, line)
	}

	root, err := ParseExpr(line)
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNo, err)
	}
	netlistData.Networks = append(netlistData.Networks, Network{
		Line: lineNo,
		Expr: line,
		Root: root,
	})
	return nil
}

// Parse .op, .dc, .verify, .end
func parseDotOperator(netlistData *NetlistData, line string) error {
	var err error

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ".op":
		netlistData.Analysis = AnalysisOP

	case ".dc":
		// .dc <node> [quantity] <start> <stop> <increment>
		netlistData.Analysis = AnalysisDC
		if len(fields) != 5 && len(fields) != 6 {
			return fmt.Errorf("insufficient DC sweep parameters")
		}

		netlistData.DCParam.Node = fields[1]
		netlistData.DCParam.Quantity = quantity.E
		values := fields[2:]
		if len(fields) == 6 {
			q, ok := quantity.Lookup(fields[2])
			if !ok {
				return fmt.Errorf("invalid sweep quantity: %s", fields[2])
			}
			netlistData.DCParam.Quantity = q
			values = fields[3:]
		}

		netlistData.DCParam.Start, err = ParseValue(values[0])
		if err != nil {
			return fmt.Errorf("invalid start value: %v", err)
		}
		netlistData.DCParam.Stop, err = ParseValue(values[1])
		if err != nil {
			return fmt.Errorf("invalid stop value: %v", err)
		}
		netlistData.DCParam.Increment, err = ParseValue(values[2])
		if err != nil {
			return fmt.Errorf("invalid increment value: %v", err)
		}

	case ".verify":
		netlistData.Verify = true

	case ".end":
		return errEnd

	default:
		return fmt.Errorf("unsupported command: %s", fields[0])
	}

	return nil
}

// ParseValue converts a number with an optional SPICE scale suffix, e.g.
// 4.7k, 2.2meg, 100n.
func ParseValue(val string) (float64, error) {
	re := regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGMKkmunpf])?s?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(val))

	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	// factor
	if len(matches) > 2 && matches[2] != "" {
		if multiplier, ok := unitMap[matches[2]]; ok {
			num *= multiplier
		}
	}

	return num, nil
}
