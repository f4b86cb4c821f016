package models

// Code is the application status carried in every response envelope
type Code int

const (
	CodeSuccess                    Code = 0
	CodeFail                       Code = 1
	CodeInvalidParameter           Code = 400
	CodeUnauthorized               Code = 401
	CodeServerException            Code = 500
	CodePublishArticleNoPermission Code = 701
	CodeDeleteArticleFail          Code = 702
	CodeArticleNotExist            Code = 703
	CodeCategoryAlreadyExist       Code = 711
	CodeCategoryNotExist           Code = 712
	CodeArticleHasThumbsUp         Code = 721
)

var codeMessages = map[Code]string{
	CodeSuccess:                    "success",
	CodeFail:                       "fail",
	CodeInvalidParameter:           "invalid parameter",
	CodeUnauthorized:               "login required",
	CodeServerException:            "server exception",
	CodePublishArticleNoPermission: "no permission to publish articles",
	CodeDeleteArticleFail:          "delete article failed",
	CodeArticleNotExist:            "article does not exist",
	CodeCategoryAlreadyExist:       "category already exists",
	CodeCategoryNotExist:           "category does not exist",
	CodeArticleHasThumbsUp:         "already liked",
}

// Message returns the default text for a code
func (c Code) Message() string {
	if m, ok := codeMessages[c]; ok {
		return m
	}
	return "unknown"
}

// DateLayout is the timestamp format used in response payloads
const DateLayout = "2006-01-02 15:04:05"
