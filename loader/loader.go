package loader

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"go.dedis.ch/secretrecover/storage"
	"go.dedis.ch/secretrecover/types"
	"golang.org/x/xerrors"
)

// KeysField is the record holding n and k. Every other top-level field is a
// share keyed by its index.
const KeysField = "keys"

type keysRecord struct {
	N number `json:"n"`
	K number `json:"k"`
}

type shareRecord struct {
	Base  number `json:"base"`
	Value string `json:"value"`
}

// number accepts both 10 and "10"
type number int

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	v, err := strconv.Atoi(string(data))
	if err != nil {
		return xerrors.Errorf("not an integer: %s", data)
	}
	*n = number(v)
	return nil
}

// LoadFile reads a share set from a JSON file
func LoadFile(path string) (*types.ShareSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	set, err := Decode(f)
	if err != nil {
		return nil, xerrors.Errorf("failed to load %s: %w", path, err)
	}
	return set, nil
}

// Decode reads a share set of the form
//
//	{"keys": {"n": 4, "k": 3}, "1": {"base": "10", "value": "4"}, ...}
//
// Shares are returned in the order they appear in the document.
func Decode(r io.Reader) (*types.ShareSet, error) {
	store, keys, err := decodeStore(r)
	if err != nil {
		return nil, err
	}
	return &types.ShareSet{
		N:      int(keys.N),
		K:      int(keys.K),
		Shares: store.Shares(),
	}, nil
}

func decodeStore(r io.Reader) (*storage.ShareStore, *keysRecord, error) {
	dec := json.NewDecoder(r)

	err := expectDelim(dec, '{')
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewShareStore()
	var keys *keysRecord

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, xerrors.Errorf("failed to read field: %v", err)
		}
		field, ok := tok.(string)
		if !ok {
			return nil, nil, xerrors.Errorf("unexpected token %v", tok)
		}

		if field == KeysField {
			if keys != nil {
				return nil, nil, xerrors.Errorf("duplicate %q record", KeysField)
			}
			keys = &keysRecord{}
			err = dec.Decode(keys)
			if err != nil {
				return nil, nil, xerrors.Errorf("failed to parse %q: %v", KeysField, err)
			}
			continue
		}

		x, err := strconv.ParseInt(field, 10, 64)
		if err != nil || x < 1 {
			return nil, nil, xerrors.Errorf("invalid share index %q", field)
		}

		var rec shareRecord
		err = dec.Decode(&rec)
		if err != nil {
			return nil, nil, xerrors.Errorf("failed to parse share %q: %v", field, err)
		}

		err = store.Put(types.Share{X: x, Base: int(rec.Base), Value: rec.Value})
		if err != nil {
			return nil, nil, err
		}
	}

	err = expectDelim(dec, '}')
	if err != nil {
		return nil, nil, err
	}

	_, err = dec.Token()
	if err != io.EOF {
		return nil, nil, xerrors.Errorf("unexpected data after the share set")
	}

	if keys == nil {
		return nil, nil, xerrors.Errorf("missing %q record", KeysField)
	}

	return store, keys, nil
}

func expectDelim(dec *json.Decoder, delim json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return xerrors.Errorf("failed to read json: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != delim {
		return xerrors.Errorf("expected %v, got %v", delim, tok)
	}
	return nil
}
