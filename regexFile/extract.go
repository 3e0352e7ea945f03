/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package regexFile provides transparent gzip/bzip2 decompression for the
// stream emitter's stdin path (spec §4.8). It cannot serve the mmap/binary
// search path (spec §4.7): a compressed file's byte offsets bear no
// relation to the decompressed content a binary search needs to walk, so
// compressed input is only ever read sequentially here.
package regexFile

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"io"

	ft "github.com/h2non/filetype"
)

const sniffLen = 261 // h2non/filetype needs at most this many header bytes

// Wrap peeks at r's header bytes and, if they identify a gzip or bzip2
// stream, returns a reader that transparently decompresses; otherwise it
// returns r's bytes unchanged. r need not be buffered: it is wrapped in a
// *bufio.Reader for the header peek, and a *bufio.Reader is returned in all
// cases so the caller can peek too.
func Wrap(r io.Reader) (*bufio.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen*4)

	header, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, err
	}

	kind, err := ft.Match(header)
	if err != nil {
		return br, nil
	}

	switch kind.MIME.Subtype {
	case "gzip":
		gz, err := gzip.NewReader(br)
		if err != nil {
			return br, nil
		}
		return bufio.NewReaderSize(gz, sniffLen*4), nil
	case "x-bzip2":
		return bufio.NewReaderSize(bzip2.NewReader(br), sniffLen*4), nil
	default:
		return br, nil
	}
}
