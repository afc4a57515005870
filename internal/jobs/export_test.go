package job

import "time"

func (c *PublishSweepJob) SetClock(now func() time.Time) {
	c.now = now
}
