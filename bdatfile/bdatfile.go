// Package bdatfile is a thin file-backed convenience layer over package
// bdat's pure Parse/Serialize core: it memory-maps a path and hands the
// mapped bytes straight to bdat.Parse, the way package pe's File type
// wraps its own byte-slice core.
package bdatfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/monolithsoft/bdat"
	"github.com/monolithsoft/bdat/log"
)

// Options controls how Open behaves.
type Options struct {
	// Logger receives a debug-level line with the number of tables each
	// Open/OpenBytes call parsed. Defaults to a stderr logger filtered to
	// LevelError.
	Logger log.Logger
}

// File is an open, memory-mapped BDAT file: the mapped bytes plus the
// tables already decoded from them.
type File struct {
	Tables []*bdat.Table

	data   mmap.MMap
	f      *os.File
	logger *log.Helper
}

// Open memory-maps name and parses every table it contains.
func Open(name string, opts *Options) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	bf := &File{data: data, f: f, logger: newHelper(opts)}

	tables, err := bdat.Parse(data)
	if err != nil {
		_ = data.Unmap()
		f.Close()
		return nil, err
	}
	bf.Tables = tables
	bf.logger.Debugf("parsed %d table(s) from %s", len(tables), name)
	return bf, nil
}

// OpenBytes parses every table in data without touching the filesystem.
func OpenBytes(data []byte, opts *Options) (*File, error) {
	bf := &File{logger: newHelper(opts)}
	tables, err := bdat.Parse(data)
	if err != nil {
		return nil, err
	}
	bf.Tables = tables
	bf.logger.Debugf("parsed %d table(s) from %d bytes", len(tables), len(data))
	return bf, nil
}

// Create serializes tables under dialect and writes the result to name,
// truncating any existing file. opts is forwarded to bdat.Serialize and
// may be nil.
func Create(name string, tables []*bdat.Table, dialect bdat.Dialect, opts *bdat.SerializeOptions) error {
	out, err := bdat.Serialize(tables, dialect, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(name, out, 0o644)
}

// Close unmaps the file's backing memory and closes the underlying
// file descriptor, if any.
func (f *File) Close() error {
	if f.data != nil {
		_ = f.data.Unmap()
	}
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

func newHelper(opts *Options) *log.Helper {
	if opts != nil && opts.Logger != nil {
		return log.NewHelper(opts.Logger)
	}
	logger := log.NewStdLogger(os.Stderr)
	return log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelError)))
}
