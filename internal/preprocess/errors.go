package preprocess

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrParserRequired indicates the pipeline was constructed without a markdown parser.
	ErrParserRequired = errors.New("preprocess: markdown parser is required")
	// ErrDecoderRequired indicates the pipeline was constructed without a data decoder.
	ErrDecoderRequired = errors.New("preprocess: data decoder is required")
	// ErrOutsideContentRoot indicates a document path that cannot be made
	// relative to the configured content root.
	ErrOutsideContentRoot = errors.New("preprocess: document path is outside the content root")

	errNotRecordSequence   = errors.New("data did not decode to a sequence of mapping records")
	errEmptyRecordSequence = errors.New("data decoded to an empty sequence")
)

const textCodeOutsideRoot = "DOCUMENT_OUTSIDE_CONTENT_ROOT"

// outsideContentRoot builds the typed failure surfaced when link
// normalization cannot derive a document's root-relative path. The pipeline
// fails loudly here instead of mis-rewriting every link in the document.
func outsideContentRoot(docPath string, root string) error {
	return goerrors.Wrap(ErrOutsideContentRoot, goerrors.CategoryValidation,
		fmt.Sprintf("document %q cannot be made relative to content root %q", docPath, root)).
		WithTextCode(textCodeOutsideRoot)
}
