package imgsrc

import (
	"os"
	"sync/atomic"
)

// FileHandle is a reference-counted wrapper around a temporary file backing
// a large pixel buffer, so the raw bytes need not stay resident for every
// banner that shares the same image across an update_data replace.
type FileHandle struct {
	file *os.File
	refs *int32
}

// NewFileHandle spills data to a fresh temp file and returns a handle with a
// reference count of one.
func NewFileHandle(data []byte) (*FileHandle, error) {
	f, err := os.CreateTemp("", "notid-img-*")
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	refs := int32(1)
	return &FileHandle{file: f, refs: &refs}, nil
}

// Clone returns a new handle sharing the same underlying file, incrementing
// the reference count.
func (h *FileHandle) Clone() *FileHandle {
	atomic.AddInt32(h.refs, 1)
	return &FileHandle{file: h.file, refs: h.refs}
}

// Bytes reads the full contents of the backing file from the start.
func (h *FileHandle) Bytes() ([]byte, error) {
	if _, err := h.file.Seek(0, 0); err != nil {
		return nil, err
	}
	return os.ReadFile(h.file.Name())
}

// Close decrements the reference count, closing and removing the backing
// file on the last release. Safe to call more than once; only the first
// call after the count reaches zero performs the removal.
func (h *FileHandle) Close() error {
	if atomic.AddInt32(h.refs, -1) > 0 {
		return nil
	}
	name := h.file.Name()
	err := h.file.Close()
	os.Remove(name)
	return err
}
