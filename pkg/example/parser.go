package example

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	kindOutput   = "output"
	kindNode     = "node"
	kindRelation = "rel"
	kindConstant = "constant"
)

// Load parses an Example directory: every regular file in dir
// declares its kind on its first line, then holds a CSV-like body.
// Node files are fully parsed before relation files, since relations
// reference nodes by label and id.
func Load(dir string) (*Example, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading example directory: %w", err)
	}

	ex := &Example{
		Nodes:         make(map[string][]Node),
		PropertyOrder: make(map[string][]string),
		Relations:     make(map[string][]Relation),
	}

	var relationFiles []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		records, err := readRecords(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if len(records) == 0 || len(records[0]) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrUnknownExampleKind)
		}

		switch records[0][0] {
		case kindOutput:
			if err := ex.parseOutput(records[1:]); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		case kindNode:
			if len(records[0]) < 2 {
				return nil, fmt.Errorf("%s: node file missing label: %w", path, ErrExampleUnderspecified)
			}
			if err := ex.parseNodes(records[0][1], records[1:]); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		case kindRelation:
			// Deferred: relations reference nodes that must already be parsed.
			relationFiles = append(relationFiles, path)
		case kindConstant:
			// One constant per line, read with the same CSV rules as the
			// other files: quotes are removed, and an unquoted line is
			// split on commas and rejoined with a bare comma, so spaces
			// following those commas are dropped.
			for _, record := range records[1:] {
				ex.Constants = append(ex.Constants, strings.Join(record, ","))
			}
		default:
			return nil, fmt.Errorf("%s: %w", path, ErrUnknownExampleKind)
		}
	}

	for _, path := range relationFiles {
		records, err := readRecords(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if len(records[0]) < 2 {
			return nil, fmt.Errorf("%s: rel file missing label: %w", path, ErrExampleUnderspecified)
		}
		if err := ex.parseRelations(records[0][1], records[1:]); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := ex.Validate(); err != nil {
		return nil, err
	}
	return ex, nil
}

// readRecords reads an entire example file as comma-separated records,
// one per line, including the leading kind-tag line. The constant file
// body is a degenerate one-field-per-line case of the same format.
func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func (e *Example) parseNodes(label string, rows [][]string) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: node family %q has no header", ErrExampleUnderspecified, label)
	}
	header := rows[0]

	if _, seen := e.Nodes[label]; !seen {
		e.NodeLabelOrder = append(e.NodeLabelOrder, label)
		e.PropertyOrder[label] = append([]string(nil), header[1:]...)
	}

	nodes := e.Nodes[label]
	for _, row := range rows[1:] {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("node %q: invalid id %q: %w", label, row[0], err)
		}
		node := Node{Label: label, ID: id, Properties: make(map[string]string, len(header)-1)}
		for i := 1; i < len(header) && i < len(row); i++ {
			node.Properties[header[i]] = row[i]
		}
		nodes = append(nodes, node)
	}
	e.Nodes[label] = nodes
	return nil
}

func (e *Example) parseRelations(label string, rows [][]string) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: relation family %q has no header", ErrExampleUnderspecified, label)
	}
	header := rows[0]
	if len(header) < 3 {
		return fmt.Errorf("%w: relation header %q needs id,src_label,dst_label", ErrExampleUnderspecified, label)
	}
	srcLabel, dstLabel := header[1], header[2]
	propNames := header[3:]

	if _, seen := e.Relations[label]; !seen {
		e.RelationLabelOrder = append(e.RelationLabelOrder, label)
		e.PropertyOrder[label] = append([]string(nil), propNames...)
	}

	rels := e.Relations[label]
	for _, row := range rows[1:] {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("relation %q: invalid id %q: %w", label, row[0], err)
		}
		srcID, err := strconv.Atoi(row[1])
		if err != nil {
			return fmt.Errorf("relation %q: invalid src id %q: %w", label, row[1], err)
		}
		dstID, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("relation %q: invalid dst id %q: %w", label, row[2], err)
		}
		if !e.hasNode(srcLabel, srcID) {
			return fmt.Errorf("relation %q: source node %s:%d not found", label, srcLabel, srcID)
		}
		if !e.hasNode(dstLabel, dstID) {
			return fmt.Errorf("relation %q: destination node %s:%d not found", label, dstLabel, dstID)
		}

		rel := Relation{
			Label: label, ID: id,
			SrcLabel: srcLabel, SrcID: srcID,
			DstLabel: dstLabel, DstID: dstID,
			Properties: make(map[string]string, len(propNames)),
		}
		for i, name := range propNames {
			if 3+i < len(row) {
				rel.Properties[name] = row[3+i]
			}
		}
		rels = append(rels, rel)
	}
	e.Relations[label] = rels
	return nil
}

func (e *Example) parseOutput(rows [][]string) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ErrExampleUnderspecified
	}
	e.OutputHeader = rows[0]
	for _, row := range rows[1:] {
		e.OutputRows = append(e.OutputRows, Row(row))
	}
	return nil
}

func (e *Example) hasNode(label string, id int) bool {
	for _, n := range e.Nodes[label] {
		if n.ID == id {
			return true
		}
	}
	return false
}
