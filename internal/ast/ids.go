package ast

type (
	FileID      uint32
	ItemID      uint32
	PatternID   uint32
	ConstructID uint32
)

const (
	NoFileID      FileID      = 0
	NoItemID      ItemID      = 0
	NoPatternID   PatternID   = 0
	NoConstructID ConstructID = 0
)

func (id FileID) IsValid() bool      { return id != NoFileID }
func (id ItemID) IsValid() bool      { return id != NoItemID }
func (id PatternID) IsValid() bool   { return id != NoPatternID }
func (id ConstructID) IsValid() bool { return id != NoConstructID }
