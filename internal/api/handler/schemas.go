package handler

// Form payloads for the auth and admin routes. Echo binds form values into
// flat string fields, so a structured payload in place of a scalar (the
// classic user[$ne]=x query-operator shape) can never survive binding: the
// expected key is absent and `required` fails.

type signupRequest struct {
	Username string `form:"username" validate:"required,alphanum,max=20"`
	Email    string `form:"email"    validate:"required,email,max=20"`
	Password string `form:"password" validate:"required,min=1,max=20"`
}

type loginRequest struct {
	Email    string `form:"email"    validate:"required,max=20"`
	Password string `form:"password" validate:"required,max=20"`
}

type roleChangeRequest struct {
	Username string `form:"username" validate:"required,alphanum,max=20"`
}
