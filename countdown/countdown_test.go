package countdown

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestComputeBreakdown(t *testing.T) {
	end := now.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second + 999*time.Millisecond)
	r := Compute(end, now)

	assert.Equal(t, Remaining{Days: 2, Hours: 3, Minutes: 4, Seconds: 5}, r)
}

func TestComputeExpired(t *testing.T) {
	assert.True(t, Compute(now, now).Expired, "end equal to now is expired")
	assert.Equal(t, Remaining{Expired: true}, Compute(now.Add(-time.Hour), now))
	assert.False(t, Compute(now.Add(time.Millisecond), now).Expired)
}

func TestComputeSubMillisecondIsNotExpired(t *testing.T) {
	r := Compute(now.Add(500*time.Microsecond), now)
	assert.False(t, r.Expired)
	assert.Zero(t, r.TotalSeconds())
	assert.True(t, Compute(now.Add(-500*time.Microsecond), now).Expired)
}

func TestComputeComponentsStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		diff := time.Duration(rng.Int63n(int64(400*24*time.Hour))) + time.Millisecond
		r := Compute(now.Add(diff), now)

		assert.False(t, r.Expired)
		assert.GreaterOrEqual(t, r.Days, 0)
		assert.True(t, r.Hours >= 0 && r.Hours < 24)
		assert.True(t, r.Minutes >= 0 && r.Minutes < 60)
		assert.True(t, r.Seconds >= 0 && r.Seconds < 60)
		assert.Equal(t, diff.Milliseconds()/1000, r.TotalSeconds())
	}
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "1 يوم 2 ساعة 3 دقيقة", Format(Remaining{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}, StyleList, LangAR))
	assert.Equal(t, "2 ساعة 3 دقيقة", Format(Remaining{Hours: 2, Minutes: 3, Seconds: 4}, StyleList, LangAR))
	assert.Equal(t, "0 دقيقة 5 ثانية", Format(Remaining{Seconds: 5}, StyleList, LangAR))
	assert.Equal(t, "1d 2h 3m", Format(Remaining{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}, StyleList, LangEN))
}

func TestFormatDetailIncludesSeconds(t *testing.T) {
	assert.Equal(t, "1 يوم 2 ساعة 3 دقيقة 4 ثانية", Format(Remaining{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}, StyleDetail, LangAR))
	assert.Equal(t, "2h 3m 4s", Format(Remaining{Hours: 2, Minutes: 3, Seconds: 4}, StyleDetail, LangEN))
	assert.Equal(t, "3m 4s", Format(Remaining{Minutes: 3, Seconds: 4}, StyleDetail, LangEN))
}

func TestFormatTimerBar(t *testing.T) {
	assert.Equal(t, "01 : 02 : 03 : 04", Format(Remaining{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}, StyleTimerBar, LangAR))
	assert.Equal(t, "00 : 00 : 00 : 00", Format(Remaining{Expired: true}, StyleTimerBar, LangEN))
	assert.Equal(t, "120 : 00 : 00 : 09", Format(Remaining{Days: 120, Seconds: 9}, StyleTimerBar, LangEN))
}

func TestFormatExpired(t *testing.T) {
	assert.Equal(t, "انتهى العرض", Format(Remaining{Expired: true}, StyleDetail, LangAR))
	assert.Equal(t, "Offer ended", Format(Remaining{Expired: true}, StyleList, LangEN))
}

func TestParseLang(t *testing.T) {
	assert.Equal(t, LangEN, ParseLang("EN"))
	assert.Equal(t, LangAR, ParseLang("ar"))
	assert.Equal(t, LangAR, ParseLang(""))
	assert.Equal(t, LangAR, ParseLang("fr"))
}
