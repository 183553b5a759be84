package zrdl

// Builder accumulates commands and interned strings/blobs for one frame.
// Reset reuses the backing slices and index maps instead of
// reallocating them. Build still copies the command slice, and each
// newly interned string is copied, so a reused Builder still allocates
// per frame.
type Builder struct {
	cmds    []Command
	strings []Entry
	blobs   []Entry

	stringIndex map[uint32]uint32 // hash -> table index, for dedup
	blobIndex   map[uint32]uint32
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		stringIndex: make(map[uint32]uint32),
		blobIndex:   make(map[uint32]uint32),
	}
}

// Reset clears the Builder for reuse without releasing its backing
// storage.
func (b *Builder) Reset() {
	b.cmds = b.cmds[:0]
	b.strings = b.strings[:0]
	b.blobs = b.blobs[:0]
	for k := range b.stringIndex {
		delete(b.stringIndex, k)
	}
	for k := range b.blobIndex {
		delete(b.blobIndex, k)
	}
}

// InternString dedups s by FNV-1a hash against this frame's string table
// and returns its table index, adding a new entry on first sight.
func (b *Builder) InternString(s string) uint32 {
	h := HashFNV1a([]byte(s))
	if idx, ok := b.stringIndex[h]; ok {
		return idx
	}
	idx := uint32(len(b.strings))
	b.strings = append(b.strings, Entry{Hash: h, Bytes: []byte(s)})
	b.stringIndex[h] = idx
	return idx
}

// InternBlob dedups a raw byte payload the same way InternString does.
func (b *Builder) InternBlob(payload []byte) uint32 {
	h := HashFNV1a(payload)
	if idx, ok := b.blobIndex[h]; ok {
		return idx
	}
	idx := uint32(len(b.blobs))
	b.blobs = append(b.blobs, Entry{Hash: h, Bytes: payload})
	b.blobIndex[h] = idx
	return idx
}

// Append adds a command to the stream, resolving any hyperlink URI on
// its Style into an interned string reference.
func (b *Builder) Append(c Command) {
	if c.Style.LinkURI != "" {
		c.LinkStringRef = b.InternString(c.Style.LinkURI)
	}
	b.cmds = append(b.cmds, c)
}

// Len reports the number of commands appended so far.
func (b *Builder) Len() int { return len(b.cmds) }

// Build finalizes the current frame into a Document. The Builder remains
// valid and can be Reset for the next frame.
func (b *Builder) Build() Document {
	return Document{Commands: append([]Command(nil), b.cmds...), Strings: b.strings, Blobs: b.blobs}
}

// Encode is a convenience wrapper around Build+Encode.
func (b *Builder) Encode() ([]byte, error) {
	return Encode(b.Build())
}
