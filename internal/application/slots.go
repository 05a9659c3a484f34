package application

import (
	"errors"
	"fmt"
	"io"
)

// MaxFileSize is the per-file size ceiling for every slot.
const MaxFileSize = 5 << 20 // 5 MiB

// SlotFile is one attached document. Open yields a fresh reader over the file
// content; it may be called more than once (scan, then upload).
type SlotFile struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// Rejection explains why a candidate file was not accepted into a slot.
type Rejection struct {
	Slot   string `json:"slot"`
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Slot is a named bucket of attachments with its own count limit.
type Slot struct {
	Name     string
	MaxFiles int
	Files    []SlotFile
}

// slotDef fixes the canonical slot table: names, order and count limits.
type slotDef struct {
	Name      string
	MaxFiles  int
	Mandatory bool
}

var slotDefs = []slotDef{
	{Name: "cv", MaxFiles: 2, Mandatory: true},
	{Name: "passportCopy", MaxFiles: 2, Mandatory: true},
	{Name: "transcript", MaxFiles: 10, Mandatory: true},
	{Name: "aLevel", MaxFiles: 2},
	{Name: "appScreenshots", MaxFiles: 50},
	{Name: "casCopy", MaxFiles: 2},
	{Name: "chatUpload", MaxFiles: 10},
	{Name: "disability", MaxFiles: 2},
	{Name: "englishTest", MaxFiles: 5},
	{Name: "euSettle", MaxFiles: 3},
	{Name: "oLevel", MaxFiles: 2},
	{Name: "otherCerts", MaxFiles: 10},
	{Name: "others", MaxFiles: 5},
	{Name: "pgDegree", MaxFiles: 2},
	{Name: "portfolio", MaxFiles: 10},
	{Name: "postBrp", MaxFiles: 2},
	{Name: "postDeposit", MaxFiles: 2},
	{Name: "postVisa", MaxFiles: 2},
	{Name: "refLetter", MaxFiles: 3},
	{Name: "sop", MaxFiles: 8},
	{Name: "ugDegree", MaxFiles: 2},
	{Name: "uniApp", MaxFiles: 10},
	{Name: "visaRefusal", MaxFiles: 3},
	{Name: "workCert", MaxFiles: 3},
}

// ErrUnknownSlot is returned when a file targets a slot outside the table.
var ErrUnknownSlot = errors.New("unknown document slot")

// Slots maps slot name to slot state for one draft.
type Slots map[string]*Slot

// NewSlots builds the full empty slot set from the canonical table.
func NewSlots() Slots {
	s := make(Slots, len(slotDefs))
	for _, def := range slotDefs {
		s[def.Name] = &Slot{Name: def.Name, MaxFiles: def.MaxFiles}
	}
	return s
}

// SlotNames returns every slot name in canonical order.
func SlotNames() []string {
	names := make([]string, 0, len(slotDefs))
	for _, def := range slotDefs {
		names = append(names, def.Name)
	}
	return names
}

// MandatorySlots returns the slots that must be non-empty at submission.
func MandatorySlots() []string {
	names := make([]string, 0, 3)
	for _, def := range slotDefs {
		if def.Mandatory {
			names = append(names, def.Name)
		}
	}
	return names
}

// Add offers candidate files to a named slot. Each candidate is accepted only
// while the slot still has capacity and the candidate is at or under the size
// ceiling; every refused candidate is reported with its reason. Accepted
// files keep the order offered.
func (s Slots) Add(slotName string, files ...SlotFile) ([]Rejection, error) {
	slot, ok := s[slotName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slotName)
	}
	return slot.Add(files...), nil
}

// Add applies the slot's count and size limits to the offered files.
func (s *Slot) Add(files ...SlotFile) []Rejection {
	var rejections []Rejection
	for _, f := range files {
		if f.Size > MaxFileSize {
			rejections = append(rejections, Rejection{
				Slot:   s.Name,
				File:   f.Name,
				Reason: "file exceeds the 5 MiB size limit",
			})
			continue
		}
		if len(s.Files) >= s.MaxFiles {
			rejections = append(rejections, Rejection{
				Slot:   s.Name,
				File:   f.Name,
				Reason: fmt.Sprintf("slot already holds the maximum of %d files", s.MaxFiles),
			})
			continue
		}
		s.Files = append(s.Files, f)
	}
	return rejections
}

// Remove deletes the file at index i, shifting subsequent entries down.
func (s *Slot) Remove(i int) error {
	if i < 0 || i >= len(s.Files) {
		return ErrIndexOutOfRange
	}
	s.Files = append(s.Files[:i], s.Files[i+1:]...)
	return nil
}

// Len returns the number of attached files.
func (s *Slot) Len() int {
	return len(s.Files)
}
