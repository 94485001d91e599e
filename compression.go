package main

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

var compressionAlgorithms = []string{"gzip", "zlib", "bzip2", "snappy", "s2", "zstd", "zip"}

type countingWriter struct {
	w     io.Writer
	count int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.count += int64(n)
	return n, err
}

// getCompressionExtension returns the file extension for a given compression algorithm
func getCompressionExtension(compressionAlgorithm string) (string, error) {
	switch compressionAlgorithm {
	case "":
		return "", nil
	case "gzip":
		return ".gz", nil
	case "zlib":
		return ".zlib", nil
	case "bzip2":
		return ".bz2", nil
	case "snappy":
		return ".snappy", nil
	case "s2":
		return ".s2", nil
	case "zstd":
		return ".zst", nil
	case "zip":
		return ".zip", nil
	default:
		return "", fmt.Errorf("unsupported compression algorithm: %s", compressionAlgorithm)
	}
}

// compressedWriter wraps the algorithm's writer so a single Close flushes
// the stream and, for zip, the archive directory.
type compressedWriter struct {
	io.Writer
	closer    io.Closer
	zipWriter *zip.Writer
}

func (c *compressedWriter) Close() error {
	if c.zipWriter != nil {
		if err := c.zipWriter.Close(); err != nil {
			return fmt.Errorf("failed to close zip writer: %w", err)
		}
		return nil
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// createCompressionWriter creates a compression writer based on the algorithm.
// An empty algorithm writes the data as is. entryName names the zip member.
func createCompressionWriter(algorithm string, output io.Writer, entryName string) (*compressedWriter, error) {
	switch algorithm {
	case "":
		return &compressedWriter{Writer: output}, nil
	case "gzip":
		w := gzip.NewWriter(output)
		return &compressedWriter{Writer: w, closer: w}, nil
	case "zlib":
		w := zlib.NewWriter(output)
		return &compressedWriter{Writer: w, closer: w}, nil
	case "bzip2":
		w, err := bzip2.NewWriter(output, &bzip2.WriterConfig{})
		if err != nil {
			return nil, err
		}
		return &compressedWriter{Writer: w, closer: w}, nil
	case "snappy":
		w := snappy.NewBufferedWriter(output)
		return &compressedWriter{Writer: w, closer: w}, nil
	case "s2":
		w := s2.NewWriter(output)
		return &compressedWriter{Writer: w, closer: w}, nil
	case "zstd":
		w, err := zstd.NewWriter(output)
		if err != nil {
			return nil, err
		}
		return &compressedWriter{Writer: w, closer: w}, nil
	case "zip":
		zipWriter := zip.NewWriter(output)
		zipFile, err := zipWriter.Create(entryName)
		if err != nil {
			_ = zipWriter.Close()
			return nil, fmt.Errorf("failed to create zip entry: %w", err)
		}
		return &compressedWriter{Writer: zipFile, zipWriter: zipWriter}, nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", algorithm)
	}
}
