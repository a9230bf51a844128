package ledger

import "github.com/mmynk/budgetwise/internal/models"

// AddFriendForm holds the two free-text fields of the add-friend form.
type AddFriendForm struct {
	Name  string
	Image string

	defaultImage string
}

// NewAddFriendForm returns an empty form whose image starts as defaultImage.
func NewAddFriendForm(defaultImage string) *AddFriendForm {
	return &AddFriendForm{Image: defaultImage, defaultImage: defaultImage}
}

// SetName sets the friend name field.
func (f *AddFriendForm) SetName(name string) { f.Name = name }

// SetImage sets the image URL field.
func (f *AddFriendForm) SetImage(image string) { f.Image = image }

// Reset restores both fields to their initial values.
func (f *AddFriendForm) Reset() {
	f.Name = ""
	f.Image = f.defaultImage
}

// Submit builds a new friend from the form. It returns false, and leaves
// the form untouched, when either field is empty. The generated ID is
// appended to the image URL so avatars stay distinct per friend.
func (f *AddFriendForm) Submit(newID func() string) (models.Friend, bool) {
	if f.Name == "" || f.Image == "" {
		return models.Friend{}, false
	}
	id := newID()
	friend := models.Friend{
		ID:      id,
		Name:    f.Name,
		Image:   f.Image + "?=" + id,
		Balance: 0,
	}
	f.Reset()
	return friend, true
}
