package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/tree"
)

// ReadJSON decodes a JSON forest from r.
//
// The input is either one node object or an array of node objects. ReadJSON
// returns an INVALID_DOCUMENT error if the JSON is malformed, contains
// unknown fields, contains a null node, or has trailing data after the
// top-level value. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]*tree.Node, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode")
	}

	dec := json.NewDecoder(br)
	dec.DisallowUnknownFields()

	var roots []*tree.Node
	if first == '[' {
		err = dec.Decode(&roots)
	} else {
		var root tree.Node
		err = dec.Decode(&root)
		roots = []*tree.Node{&root}
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode")
	}
	if dec.More() {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "decode: trailing data after top-level value")
	}
	if err := checkNulls(roots); err != nil {
		return nil, err
	}
	return roots, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, fmt.Errorf("empty input")
			}
			return 0, err
		}
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, br.UnreadByte()
		}
	}
}

// checkNulls rejects null entries anywhere in the forest.
func checkNulls(roots []*tree.Node) error {
	stack := append([]*tree.Node(nil), roots...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			return errors.New(errors.ErrCodeInvalidDocument, "null node in forest")
		}
		stack = append(stack, n.Children...)
	}
	return nil
}

// ImportJSON reads a JSON file at path and returns the decoded forest.
//
// A missing file yields a FILE_NOT_FOUND error; otherwise ImportJSON returns
// the same errors as [ReadJSON], wrapped with the file path.
func ImportJSON(path string) ([]*tree.Node, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "%s does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	roots, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return roots, nil
}
