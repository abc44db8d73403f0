package regid

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"guestregistry/internal/domain"
)

const (
	prefix      = "REG"
	suffixLen   = 8
	suffixChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

type generator struct{}

// NewGenerator returns a RegistrationIDGenerator producing identifiers of the
// form REG-<unix millis, base36>-<random suffix>. The identifier is URL-safe
// and carries no guest data. Generation is total: it never fails or blocks.
func NewGenerator() domain.RegistrationIDGenerator {
	return &generator{}
}

func (g *generator) New() string {
	millis := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := make([]byte, suffixLen)
	for i := range suffix {
		suffix[i] = suffixChars[rand.IntN(len(suffixChars))]
	}
	return prefix + "-" + millis + "-" + string(suffix)
}
