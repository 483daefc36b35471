package model

import (
	"errors"
	"fmt"
)

//region InsufficientFundsError

// InsufficientFundsError - списание больше баланса
type InsufficientFundsError struct {
	Msg string
}

func (e *InsufficientFundsError) Error() string {
	return e.Msg
}

func (e *InsufficientFundsError) Is(target error) bool {
	_, ok := target.(*InsufficientFundsError)
	return ok
}

//endregion

//region InvalidAmountError

// InvalidAmountError - сумма не положительная, не число или больше допустимого
type InvalidAmountError struct {
	Msg string
}

func (e *InvalidAmountError) Error() string {
	return e.Msg
}

func (e *InvalidAmountError) Is(target error) bool {
	_, ok := target.(*InvalidAmountError)
	return ok
}

//endregion

//region InvalidStateError

// InvalidStateError - операция запрещена в текущем состоянии раунда
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string {
	return e.Msg
}

func (e *InvalidStateError) Is(target error) bool {
	_, ok := target.(*InvalidStateError)
	return ok
}

//endregion

//region PersistenceError

// PersistenceError - запись в хранилище не завершилась
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return "persistence failure: " + e.Op
	}
	return fmt.Sprintf("persistence failure: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	_, ok := target.(*PersistenceError)
	return ok
}

//endregion

//region UserExistsError

type UserExistsError struct {
	Msg string
}

func (e *UserExistsError) Error() string {
	return e.Msg
}

func (e *UserExistsError) Is(target error) bool {
	_, ok := target.(*UserExistsError)
	return ok
}

//endregion

//region UserNotFoundError

type UserNotFoundError struct {
	Msg string
}

func (e *UserNotFoundError) Error() string {
	return e.Msg
}

func (e *UserNotFoundError) Is(target error) bool {
	_, ok := target.(*UserNotFoundError)
	return ok
}

//endregion

//region UnauthorizedError

type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string {
	return e.Msg
}

func (e *UnauthorizedError) Is(target error) bool {
	_, ok := target.(*UnauthorizedError)
	return ok
}

//endregion

//region ValidationError

// ValidationError - некорректный запрос вне денежных сумм
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

//endregion

// Persistence оборачивает ошибку хранилища в PersistenceError.
// Ошибки из таксономии возвращаются как есть
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsDomainError - ошибка уже относится к одному из известных типов
func IsDomainError(err error) bool {
	return errors.Is(err, &InsufficientFundsError{}) ||
		errors.Is(err, &InvalidAmountError{}) ||
		errors.Is(err, &InvalidStateError{}) ||
		errors.Is(err, &PersistenceError{}) ||
		errors.Is(err, &UserExistsError{}) ||
		errors.Is(err, &UserNotFoundError{}) ||
		errors.Is(err, &UnauthorizedError{}) ||
		errors.Is(err, &ValidationError{})
}
