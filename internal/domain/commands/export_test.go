package commands

// RelativePath exports relativePath for testing.
var RelativePath = relativePath //nolint:gochecknoglobals // test export

// NewSourceFile exports newSourceFile for testing.
var NewSourceFile = newSourceFile //nolint:gochecknoglobals // test export
