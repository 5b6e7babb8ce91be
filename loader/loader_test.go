package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_LoadFile(t *testing.T) {
	set, err := LoadFile("testdata/testcase1.json")
	require.NoError(t, err)
	require.Equal(t, 4, set.N)
	require.Equal(t, 3, set.K)
	require.Len(t, set.Shares, 4)
	require.Equal(t, int64(6), set.Shares[3].X)
	require.Equal(t, 4, set.Shares[3].Base)
	require.Equal(t, "213", set.Shares[3].Value)

	set, err = LoadFile("testdata/testcase2.json")
	require.NoError(t, err)
	require.Equal(t, 9, set.N)
	require.Equal(t, 6, set.K)
	require.Len(t, set.Shares, 9)

	_, err = LoadFile("testdata/missing.json")
	require.Error(t, err)
}

// records come back in document order, whatever their index
func Test_Decode_Order(t *testing.T) {
	doc := `{
		"3": {"base": "10", "value": "11"},
		"keys": {"n": 3, "k": 2},
		"1": {"base": 10, "value": "3"},
		"2": {"base": "16", "value": "6"}
	}`

	set, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 2, set.K)

	xs := []int64{}
	for _, s := range set.Shares {
		xs = append(xs, s.X)
	}
	require.Equal(t, []int64{3, 1, 2}, xs)
	require.Equal(t, 10, set.Shares[1].Base)
}

func Test_Decode_Trailing_Whitespace(t *testing.T) {
	set, err := Decode(strings.NewReader(`{"keys": {"n": 1, "k": 1}, "1": {"base": "10", "value": "3"}}` + "\n\n"))
	require.NoError(t, err)
	require.Len(t, set.Shares, 1)
}

func Test_Decode_Errors(t *testing.T) {
	docs := []string{
		``,
		`[]`,
		`{"1": {"base": "10", "value": "3"}}`,
		`{"keys": {"n": 1, "k": 1}, "x": {"base": "10", "value": "3"}}`,
		`{"keys": {"n": 1, "k": 1}, "0": {"base": "10", "value": "3"}}`,
		`{"keys": {"n": 1, "k": 1}, "1": {"base": "ten", "value": "3"}}`,
		`{"keys": {"n": "one", "k": 1}}`,
		`{"keys": {"n": 2, "k": 1}, "1": {"base": "10", "value": "3"}, "1": {"base": "10", "value": "4"}}`,
		`{"keys": {"n": 1, "k": 1}`,
		`{"keys": {"n": 1, "k": 1}, "1": {"base": "10", "value": "3"}, "keys": {"n": 2, "k": 2}}`,
		`{"keys": {"n": 1, "k": 1}, "1": {"base": "10", "value": "3"}} {}`,
		`{"keys": {"n": 1, "k": 1}, "1": {"base": "10", "value": "3"}}}`,
	}

	for _, doc := range docs {
		_, err := Decode(strings.NewReader(doc))
		require.Error(t, err, doc)
	}
}
