package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSQL_DropsCommentsAndBlanks(t *testing.T) {
	input := `-- header
CREATE TABLE a (id INT);

-- second
CREATE INDEX i ON a (id);
`
	stmts := splitSQL(stripSQLComments(input))
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX i ON a (id)"}, stmts)
}

func TestRepoRootFindsModule(t *testing.T) {
	root, err := RepoRoot()
	assert.NoError(t, err)
	assert.FileExists(t, root+"/go.mod")
}
