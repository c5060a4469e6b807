package model

// Directory maps a specialist category key ("general_physician") to the
// doctors practising it. The JSON layout mirrors the legacy doctors.json
// document exactly so existing datasets load unchanged.
type Directory map[string][]*Doctor

// Doctor is one directory entry. AvailableSlots maps a calendar date
// ("2025-05-01") to the open time strings for that date. Slot order within a
// date is whatever the source dataset had; removal splices, never sorts.
type Doctor struct {
	Name           string              `json:"doctor_name"`
	AvailableSlots map[string][]string `json:"available_slots"`
}

// DoctorListing is the get_doctors_list success payload. Specialization
// carries the caller's original label, not the normalized key.
type DoctorListing struct {
	Specialization string    `json:"specialization"`
	Doctors        []*Doctor `json:"doctors"`
}

// Clone deep-copies the directory. Repositories hand out clones so two
// concurrent bookings see independent snapshots, mirroring file reads.
func (d Directory) Clone() Directory {
	if d == nil {
		return nil
	}
	out := make(Directory, len(d))
	for category, doctors := range d {
		cloned := make([]*Doctor, len(doctors))
		for i, doc := range doctors {
			slots := make(map[string][]string, len(doc.AvailableSlots))
			for date, times := range doc.AvailableSlots {
				slots[date] = append([]string(nil), times...)
			}
			cloned[i] = &Doctor{Name: doc.Name, AvailableSlots: slots}
		}
		out[category] = cloned
	}
	return out
}
