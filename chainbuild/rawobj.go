// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chainbuild

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/luxfi/vqchain/chainmodel"
)

// LoadRawObjects reads every line of r and groups the raw objects it
// describes by block id, preserving line order within a block. Each line
// has the form:
//
//	block_id [v_1,v_2,...] {w_1,w_2,...}
//
// matching the original's load_raw_obj_from_str. Blank lines are skipped.
func LoadRawObjects(r io.Reader) (map[chainmodel.ID][]chainmodel.RawObject, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadRawObjectsFromString(string(data))
}

// LoadRawObjectsFromString is LoadRawObjects over an in-memory string.
func LoadRawObjectsFromString(input string) (map[chainmodel.ID][]chainmodel.RawObject, error) {
	res := make(map[chainmodel.ID][]chainmodel.RawObject)
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		raw, err := parseRawObjectLine(line)
		if err != nil {
			return nil, fmt.Errorf("chainbuild: %w", err)
		}
		res[raw.BlockID] = append(res[raw.BlockID], raw)
	}
	return res, nil
}

// parseRawObjectLine parses one "block_id [v,v,...] {w,w,...}" line,
// splitting on the first '[' and first ']' exactly as the original does
// with splitn(3, ['[', ']']).
func parseRawObjectLine(line string) (chainmodel.RawObject, error) {
	lbracket := strings.IndexByte(line, '[')
	rbracket := strings.IndexByte(line, ']')
	if lbracket < 0 || rbracket < 0 || rbracket < lbracket {
		return chainmodel.RawObject{}, fmt.Errorf("failed to parse line %q", line)
	}

	blockIDStr := strings.TrimSpace(line[:lbracket])
	blockID64, err := strconv.ParseUint(blockIDStr, 10, 32)
	if err != nil {
		return chainmodel.RawObject{}, fmt.Errorf("failed to parse line %q: %w", line, err)
	}

	vPart := strings.TrimSpace(line[lbracket+1 : rbracket])
	var vData []uint32
	if vPart != "" {
		for _, tok := range strings.Split(vPart, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			v, err := strconv.ParseUint(tok, 10, 32)
			if err != nil {
				return chainmodel.RawObject{}, fmt.Errorf("failed to parse line %q: %w", line, err)
			}
			vData = append(vData, uint32(v))
		}
	}

	wPart := strings.TrimSpace(line[rbracket+1:])
	wPart = strings.ReplaceAll(wPart, "{", "")
	wPart = strings.ReplaceAll(wPart, "}", "")
	seen := make(map[string]struct{})
	var wData []string
	for _, tok := range strings.Split(wPart, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		wData = append(wData, tok)
	}

	return chainmodel.RawObject{
		BlockID: uint32(blockID64),
		VData:   vData,
		WData:   wData,
	}, nil
}
