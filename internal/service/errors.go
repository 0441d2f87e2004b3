package service

import (
	"errors"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrLectureNotFound  = errors.New("lecture not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrAttemptNotFound  = errors.New("no quiz attempt found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrPurchaseNotFound = errors.New("purchase not found")

	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("you are not allowed to perform this action")
	ErrNotEnrolled        = errors.New("you are not enrolled in this course")

	ErrAlreadyEnrolled       = errors.New("already enrolled in this course")
	ErrFreeCourse            = errors.New("free courses cannot be purchased")
	ErrCourseNotPublished    = errors.New("course is not published")
	ErrNoLectures            = errors.New("a course needs at least one lecture to be published")
	ErrCourseHasEnrollments  = errors.New("course has enrolled students and cannot be deleted")
	ErrLectureNotInCourse    = errors.New("lecture does not belong to this course")
	ErrQuizExists            = errors.New("this course already has a quiz")
	ErrInvalidQuestion       = errors.New("each question needs at least two options and a valid correct answer")
	ErrEmptyQuiz             = errors.New("quiz has no questions")
	ErrAnswerCountMismatch   = errors.New("number of answers does not match number of questions")
	ErrReviewExists          = errors.New("you have already reviewed this course")
	ErrCategoryExists        = errors.New("category already exists")
	ErrInvalidWebhookPayload = errors.New("invalid webhook payload")
	ErrInvalidSignature      = errors.New("invalid webhook signature")
	ErrPaymentProvider       = errors.New("payment provider error")
)
