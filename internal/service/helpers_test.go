package service

import "strconv"

func uintStr(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
