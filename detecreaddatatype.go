package qtl2prep

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475 . Streams shorter than a
// signature (including empty ones) are reported as uncompressed.
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	// Match known signatures
Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompressReadCloser detects the compression of rsc and returns a
// reader over the decompressed stream. Closing the returned reader also
// closes rsc. Block-gzipped (bgzip) files are read as multistream gzip.
func MaybeDecompressReadCloser(rsc ReadSeekCloser) (io.ReadCloser, error) {
	dt, err := DetectDataType(rsc)
	if err != nil {
		return nil, err
	}

	// Reset your original reader
	if _, err := rsc.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch dt {
	case DataTypeGzip:
		r, err := gzip.NewReader(rsc)
		if err != nil {
			return nil, err
		}
		return &stackedReadCloser{Reader: r, closers: []io.Closer{r, rsc}}, nil
	case DataTypeZip:
		return &stackedReadCloser{Reader: zipstream.NewReader(rsc), closers: []io.Closer{rsc}}, nil
	case DataTypeBZip2:
		return &stackedReadCloser{Reader: bzip2.NewReader(rsc), closers: []io.Closer{rsc}}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(rsc, 0)
		if err != nil {
			return nil, err
		}
		return &stackedReadCloser{Reader: reader, closers: []io.Closer{rsc}}, nil
	case DataTypeZ:
		r, err := zlib.NewReader(rsc)
		if err != nil {
			return nil, err
		}
		return &stackedReadCloser{Reader: r, closers: []io.Closer{r, rsc}}, nil
	}

	// No data type detected. For now, we assume this is uncompressed.
	return rsc, nil
}

// Open opens a local or gs:// path and transparently decompresses it.
func Open(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	rsc, _, err := MaybeOpenSeekerFromGoogleStorage(ctx, path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	rc, err := MaybeDecompressReadCloser(rsc)
	if err != nil {
		rsc.Close()
		return nil, pfx.Err(err)
	}

	return rc, nil
}

// stackedReadCloser closes the decompressor and then the underlying source.
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *stackedReadCloser) Close() error {
	var first error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
