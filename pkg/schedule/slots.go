package schedule

// UnknownTime is shown for slot numbers outside the bell schedule.
const UnknownTime = "??:??"

var slotTimes = map[string]string{
	"1": "08:30 - 10:00",
	"2": "10:10 - 11:40",
	"3": "11:50 - 13:20",
	"4": "14:00 - 15:30",
	"5": "15:40 - 17:10",
	"6": "17:20 - 18:50",
	"7": "19:00 - 20:30",
	"8": "20:40 - 22:10",
}

// SlotTime returns the "HH:MM - HH:MM" range of a class period.
func SlotTime(slot string) string {
	if t, ok := slotTimes[slot]; ok {
		return t
	}
	return UnknownTime
}
