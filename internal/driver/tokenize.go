package driver

import (
	"os"

	"phpsniff/internal/index"
	"phpsniff/internal/lexer"
	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

// TokenizeResult holds one file's token stream, for the tokenize command.
type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Index  *index.Index
}

// Tokenize lexes and indexes path. A structure error is returned together
// with the tokens so that callers can still dump them.
func Tokenize(path string, opts lexer.Options) (*TokenizeResult, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return nil, err
	}
	return TokenizeBytes(path, content, opts)
}

// TokenizeBytes is Tokenize for in-memory content.
func TokenizeBytes(path string, content []byte, opts lexer.Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.Add(path, content, 0))

	toks, err := lexer.Tokenize(file, opts)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	res := &TokenizeResult{File: file, Tokens: toks}
	idx, err := index.Build(toks)
	if err != nil {
		return res, &FileError{Path: path, Err: err}
	}
	res.Index = idx
	return res, nil
}
