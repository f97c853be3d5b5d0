package util

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// GenerateOrderNumber builds a readable, effectively unique order number,
// e.g. "DZ-20260901-4F7K2Q".
func GenerateOrderNumber() string {
	const alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ" // no 0/O/1/I/L

	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}

	return fmt.Sprintf("DZ-%s-%s", time.Now().Format("20060102"), b.String())
}
