package washroom

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidIdentity = errors.New("invalid washroom identity")

// Identity is the (floor, toilet type) pair that names a washroom.
// Neither part may contain a space, otherwise the string form cannot be split back.
type Identity struct {
	Floor      string
	ToiletType string
}

func (id Identity) String() string {
	return id.Floor + " " + id.ToiletType
}

// ParseIdentity splits "{floor} {toiletType}" on the first space.
func ParseIdentity(s string) (Identity, error) {
	floor, toiletType, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok || floor == "" || toiletType == "" {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentity, s)
	}
	return Identity{Floor: floor, ToiletType: toiletType}, nil
}
