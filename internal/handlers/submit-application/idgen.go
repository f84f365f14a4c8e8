// internal/handlers/submit-application/idgen.go
package submitapplication

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixLength = 9

// IDGenerator produces <prefix>-<epoch ms>-<9 base36 chars>.
type IDGenerator struct {
	Prefix string
	Now    func() time.Time
}

func NewIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{Prefix: prefix, Now: time.Now}
}

func (g *IDGenerator) Next() string {
	return fmt.Sprintf("%s-%d-%s", g.Prefix, g.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	id := uuid.New()
	s := strconv.FormatUint(binary.BigEndian.Uint64(id[:8]), 36)
	if len(s) < suffixLength {
		s = strings.Repeat("0", suffixLength-len(s)) + s
	}
	return s[len(s)-suffixLength:]
}
