package models

// ContactForm is a message submitted through the contact page.
type ContactForm struct {
	Name    string `form:"name" json:"name" binding:"required,max=200"`
	Email   string `form:"email" json:"email" binding:"required,email,max=320"`
	Phone   string `form:"phone" json:"phone" binding:"max=50"`
	Subject string `form:"subject" json:"subject" binding:"required,oneof=general research programs careers partnership other"`
	Message string `form:"message" json:"message" binding:"required,max=5000"`
}
