package lineupservice

import (
	"github.com/Black-And-White-Club/dugout/app/modules/lineup/application/parsers"
	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
)

// ------------------------
// Fake Parser Factory
// ------------------------

type FakeParserFactory struct {
	trace []string

	GetParserFunc func(filename string) (parsers.Parser, error)
}

func NewFakeParserFactory() *FakeParserFactory {
	return &FakeParserFactory{trace: []string{}}
}

func (f *FakeParserFactory) GetParser(filename string) (parsers.Parser, error) {
	f.trace = append(f.trace, "GetParser:"+filename)
	if f.GetParserFunc != nil {
		return f.GetParserFunc(filename)
	}
	return &FakeParser{}, nil
}

func (f *FakeParserFactory) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// ------------------------
// Fake Parser
// ------------------------

type FakeParser struct {
	ParseFunc func(data []byte) (*lineuptypes.Roster, error)
}

func (p *FakeParser) Parse(data []byte) (*lineuptypes.Roster, error) {
	if p.ParseFunc != nil {
		return p.ParseFunc(data)
	}
	return &lineuptypes.Roster{}, nil
}

var (
	_ parsers.ParserFactory = (*FakeParserFactory)(nil)
	_ parsers.Parser        = (*FakeParser)(nil)
)
