package user

import "errors"

var (
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrEmployeeIDRequired    = errors.New("employee ID claim is required")
	ErrCompanyIDRequired     = errors.New("company ID claim is required")
)
