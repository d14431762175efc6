package game

import "github.com/samber/lo"

// RoomIDLength is the length of generated room ids.
const RoomIDLength = 6

var roomIDCharset = append(append([]rune{}, lo.UpperCaseLettersCharset...), lo.NumbersCharset...)

// IDGenerator produces candidate room ids. Uniqueness among live rooms is
// checked by the registry.
type IDGenerator interface {
	Generate() string
}

type randomIDs struct{}

func (randomIDs) Generate() string {
	return lo.RandomString(RoomIDLength, roomIDCharset)
}
