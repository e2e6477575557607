package sab

import (
	"fmt"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/internal/hash"
)

// readHeaderAndAttributes parses the fixed prefix shared by a full read and
// the index-only fast path: id-pattern, version, the file-attribute-alist,
// and the two section offsets (spec §4.4, §6).
func readHeaderAndAttributes(r *Reader) ([]Field, FileHeader, error) {
	idPattern, err := r.ReadU32LE()
	if err != nil {
		return nil, FileHeader{}, err
	}
	if idPattern != 0 {
		return nil, FileHeader{}, errs.ErrNotSabFile
	}

	version, err := r.ReadU8()
	if err != nil {
		return nil, FileHeader{}, err
	}
	if version != 7 {
		return nil, FileHeader{}, fmt.Errorf("%w %d", errs.ErrBadVersion, version)
	}

	r.BeginSection()
	attrsAny, err := r.ReadExpected(OpFileAttributeAlist)
	if err != nil {
		return nil, FileHeader{}, err
	}
	attrs, ok := attrsAny.([]Field)
	if !ok {
		return nil, FileHeader{}, errs.Decode(r.Offset(), OpFileAttributeAlist.Name(), errs.ErrMalformedFileHeader)
	}

	recordsOffset, err := r.ReadU32LE()
	if err != nil {
		return nil, FileHeader{}, err
	}
	indexOffset, err := r.ReadU32LE()
	if err != nil {
		return nil, FileHeader{}, err
	}

	return attrs, FileHeader{RecordsOffset: recordsOffset, IndexOffset: indexOffset}, nil
}

// ReadFile fully decodes a SAB archive member: file attributes, every
// record in the records section, and the index section. interner may be
// nil.
func ReadFile(data []byte, interner *hash.Interner) (*File, error) {
	r := NewReader(data, interner)

	attrs, header, err := readHeaderAndAttributes(r)
	if err != nil {
		return nil, err
	}

	if err := r.Seek(int(header.RecordsOffset)); err != nil {
		return nil, err
	}
	var records []*Record
	for r.Offset() < int(header.IndexOffset) {
		r.BeginSection()
		recAny, err := r.ReadExpected(OpRecord)
		if err != nil {
			return nil, err
		}
		records = append(records, recAny.(*Record))
	}

	if err := r.Seek(int(header.IndexOffset)); err != nil {
		return nil, err
	}
	r.BeginSection()
	indexAny, err := r.ReadExpected(OpIndex)
	if err != nil {
		return nil, err
	}

	return &File{
		Header:         header,
		FileAttributes: attrs,
		Records:        records,
		Index:          indexAny.([]IndexItem),
	}, nil
}

// ReadIndexOnly implements the pass-1 fast path (spec §4.4): header +
// file-attribute-alist + section offsets, then seek straight to the index
// section, skipping every record body. Used by the cross-reference
// registry's first pass.
func ReadIndexOnly(data []byte, interner *hash.Interner) (*IndexOnly, error) {
	r := NewReader(data, interner)

	attrs, header, err := readHeaderAndAttributes(r)
	if err != nil {
		return nil, err
	}

	if err := r.Seek(int(header.IndexOffset)); err != nil {
		return nil, err
	}
	r.BeginSection()
	indexAny, err := r.ReadExpected(OpIndex)
	if err != nil {
		return nil, err
	}

	return &IndexOnly{
		Header:         header,
		FileAttributes: attrs,
		Index:          indexAny.([]IndexItem),
	}, nil
}
