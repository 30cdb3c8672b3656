package example

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadSingleNodeExample(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "person", "node,Person\nid,name\n0,Ada\n1,Grace\n")
	writeFile(t, dir, "out", "output\nname\nAda\nGrace\n")

	ex, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Person"}, ex.NodeLabelOrder)
	assert.Equal(t, []string{"name"}, ex.PropertyOrder["Person"])
	require.Len(t, ex.Nodes["Person"], 2)
	assert.Equal(t, "Ada", ex.Nodes["Person"][0].Properties["name"])
	assert.Equal(t, []string{"name"}, ex.OutputHeader)
	assert.Equal(t, []Row{{"Ada"}, {"Grace"}}, ex.OutputRows)
	assert.Empty(t, ex.Constants)
}

func TestLoadRelationExample(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "person", "node,Person\nid,name\n0,Ada\n1,Grace\n")
	writeFile(t, dir, "city", "node,City\nid,name\n0,Paris\n1,Oslo\n")
	// Relation file appears before node files alphabetically, proving
	// Load defers relation parsing regardless of directory iteration order.
	writeFile(t, dir, "a_lives_in", "rel,LIVES_IN\nid,Person,City\n0,0,0\n1,1,1\n")
	writeFile(t, dir, "out", "output\nname,name\nAda,Paris\nGrace,Oslo\n")

	ex, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, ex.Relations["LIVES_IN"], 2)
	rel := ex.Relations["LIVES_IN"][0]
	assert.Equal(t, "Person", rel.SrcLabel)
	assert.Equal(t, 0, rel.SrcID)
	assert.Equal(t, "City", rel.DstLabel)
	assert.Equal(t, 0, rel.DstID)
}

func TestLoadConstants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "person", "node,Person\nid,name\n0,Ada\n")
	writeFile(t, dir, "out", "output\nname\nAda\n")
	writeFile(t, dir, "const", "constant\nAda\n")

	ex, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada"}, ex.Constants)
}

func TestLoadConstantContainingComma(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "person", "node,Person\nid,name\n0,Ada\n")
	writeFile(t, dir, "out", "output\nname\nAda\n")
	writeFile(t, dir, "const", "constant\n\"Lovelace, Ada\"\nGrace\n")

	ex, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lovelace, Ada", "Grace"}, ex.Constants)
}

func TestLoadUnknownKind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "junk", "bogus\nfoo\n")

	_, err := Load(dir)
	require.ErrorIs(t, err, ErrUnknownExampleKind)
}

func TestLoadEmptyNodeFamilyUnderspecified(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "person", "node,Person\nid,name\n")
	writeFile(t, dir, "out", "output\nname\n")

	_, err := Load(dir)
	require.ErrorIs(t, err, ErrExampleUnderspecified)
}

func TestValidateRejectsConstantWithRawNewline(t *testing.T) {
	ex := &Example{
		NodeLabelOrder: []string{"Person"},
		Nodes: map[string][]Node{
			"Person": {{Label: "Person", ID: 0, Properties: map[string]string{"name": "Ada"}}},
		},
		OutputHeader: []string{"name"},
		Constants:    []string{"Ada\nLovelace"},
	}
	require.ErrorIs(t, ex.Validate(), ErrExampleUnderspecified)
}

func TestLoadRelationMissingNode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "person", "node,Person\nid,name\n0,Ada\n")
	writeFile(t, dir, "rel", "rel,KNOWS\nid,Person,Person\n0,0,1\n")
	writeFile(t, dir, "out", "output\nname\nAda\n")

	_, err := Load(dir)
	require.Error(t, err)
}
