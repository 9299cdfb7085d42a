package resources

// Set bundles every feature service over one client.
type Set struct {
	Diary      *DiaryService
	Bullets    *BulletService
	Profile    *ProfileService
	Motivation *MotivationService
}

func NewSet(d Doer, users UserIDSource) *Set {
	return &Set{
		Diary:      NewDiaryService(d, users),
		Bullets:    NewBulletService(d, users),
		Profile:    NewProfileService(d, users),
		Motivation: NewMotivationService(d, users),
	}
}
