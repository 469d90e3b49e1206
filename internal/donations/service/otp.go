package service

import (
	"math/rand/v2"
	"strconv"
)

// mintOTP returns a 4-digit decimal pickup code in [1000, 9999]. Collisions
// with codes on other active claims are not checked; the code is only ever
// compared against its own record.
func mintOTP() string {
	return strconv.Itoa(1000 + rand.IntN(9000))
}
