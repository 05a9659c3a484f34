package application

import (
	"errors"
	"fmt"
	"io"

	"github.com/dutchcoders/go-clamd"
)

// ErrInfectedFile marks a document rejected by the malware scanner.
var ErrInfectedFile = errors.New("malicious file detected")

// Scanner checks a document stream before it is uploaded.
type Scanner interface {
	Scan(r io.Reader) error
}

// ClamScanner scans document streams against a clamd daemon.
type ClamScanner struct {
	addr string
}

// NewClamScanner returns a scanner talking to the clamd daemon at addr.
func NewClamScanner(addr string) *ClamScanner {
	return &ClamScanner{addr: addr}
}

// Scan streams the document to clamd and returns ErrInfectedFile when any
// scan result is not clean.
func (s *ClamScanner) Scan(r io.Reader) error {
	client := clamd.NewClamd(s.addr)

	abort := make(chan bool)
	defer close(abort)

	results, err := client.ScanStream(r, abort)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}

	for result := range results {
		if result.Status != clamd.RES_OK {
			return fmt.Errorf("%w: %s", ErrInfectedFile, result.Description)
		}
	}
	return nil
}
