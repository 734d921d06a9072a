package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Yekaterinburg")
	if err != nil {
		panic(err)
	}
}

// force timezone to be in Ufa because the hosting provider sometimes
// ends up in a different region which will cause disturbances when
// manipulating dates based on <time.Time>.Year()/Month()/Day()/Hour()/...
func Now() time.Time {
	return time.Now().In(Location)
}
