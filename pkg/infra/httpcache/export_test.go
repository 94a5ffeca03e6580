package httpcache

import "time"

func (x *Transport) SetNowForTest(f func() time.Time) {
	x.now = f
}
