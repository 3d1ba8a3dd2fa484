package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasktrack/internal/constants"
	"tasktrack/internal/models"
	"tasktrack/internal/repository"
	"tasktrack/internal/services"
	"tasktrack/internal/storage"
)

// AttachmentHandlerTestSuite defines the test suite for AttachmentHandler
type AttachmentHandlerTestSuite struct {
	suite.Suite
	db        *gorm.DB
	handler   *AttachmentHandler
	uploadDir string
	owner     *models.User
	other     *models.User
	task      *models.Task
}

// SetupTest runs before each test
func (suite *AttachmentHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Task{},
		&models.Attachment{},
	)
	suite.Require().NoError(err)

	suite.uploadDir = suite.T().TempDir()
	blobs, err := storage.NewDiskStore(suite.uploadDir)
	suite.Require().NoError(err)

	attachmentService := services.NewAttachmentService(
		repository.NewAttachmentRepository(suite.db),
		repository.NewTaskRepository(suite.db),
		blobs,
		0,
	)
	suite.handler = NewAttachmentHandler(attachmentService)

	gin.SetMode(gin.TestMode)

	suite.owner = &models.User{Username: "alice", PasswordHash: "hashedpassword"}
	suite.db.Create(suite.owner)
	suite.other = &models.User{Username: "bob", PasswordHash: "hashedpassword"}
	suite.db.Create(suite.other)

	suite.task = &models.Task{Title: "Test Task", OwnerID: suite.owner.ID}
	suite.db.Create(suite.task)
}

// TearDownTest runs after each test
func (suite *AttachmentHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// createUploadContext builds an authenticated multipart upload request
// against the given task.
func (suite *AttachmentHandlerTestSuite) createUploadContext(userID, taskID uint64, filename, contentType string, content []byte) (*gin.Context, *httptest.ResponseRecorder) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/tasks/1/attachments", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(taskID, 10)}}

	return c, w
}

func (suite *AttachmentHandlerTestSuite) uploadDirEntries() int {
	entries, err := os.ReadDir(suite.uploadDir)
	suite.Require().NoError(err)
	return len(entries)
}

func (suite *AttachmentHandlerTestSuite) TestUpload_Success() {
	c, w := suite.createUploadContext(suite.owner.ID, suite.task.ID, "notes.txt", "text/plain", []byte("some notes"))

	suite.handler.Upload(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "notes.txt", response["original_filename"])
	assert.Equal(suite.T(), "text/plain", response["mimetype"])

	stored := response["stored_filename"].(string)
	assert.Equal(suite.T(), "/uploads/"+stored, response["url"])
	assert.Equal(suite.T(), 1, suite.uploadDirEntries())
}

func (suite *AttachmentHandlerTestSuite) TestUpload_ForeignTaskForbidden() {
	c, w := suite.createUploadContext(suite.other.ID, suite.task.ID, "notes.txt", "text/plain", []byte("some notes"))

	suite.handler.Upload(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Zero(suite.T(), suite.uploadDirEntries())
}

func (suite *AttachmentHandlerTestSuite) TestUpload_DisallowedMimetype() {
	c, w := suite.createUploadContext(suite.owner.ID, suite.task.ID, "archive.zip", "application/zip", []byte("PK..."))

	suite.handler.Upload(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Zero(suite.T(), suite.uploadDirEntries())
}

func (suite *AttachmentHandlerTestSuite) TestUpload_NoFile() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/tasks/1/attachments", nil)
	c.Set(constants.ContextKeyUserID, suite.owner.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(suite.task.ID, 10)}}

	suite.handler.Upload(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AttachmentHandlerTestSuite) TestList_Success() {
	c, w := suite.createUploadContext(suite.owner.ID, suite.task.ID, "notes.txt", "text/plain", []byte("some notes"))
	suite.handler.Upload(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/tasks/1/attachments", nil)
	c.Set(constants.ContextKeyUserID, suite.owner.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(suite.task.ID, 10)}}

	suite.handler.List(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response, 1)
	assert.Equal(suite.T(), "notes.txt", response[0]["original_filename"])
}

func (suite *AttachmentHandlerTestSuite) TestDelete_Success() {
	c, w := suite.createUploadContext(suite.owner.ID, suite.task.ID, "notes.txt", "text/plain", []byte("some notes"))
	suite.handler.Upload(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var attachment models.Attachment
	suite.db.First(&attachment)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/attachments/1", nil)
	c.Set(constants.ContextKeyUserID, suite.owner.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(attachment.ID, 10)}}

	suite.handler.Delete(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Zero(suite.T(), suite.uploadDirEntries())
}

func (suite *AttachmentHandlerTestSuite) TestDelete_NotFound() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/attachments/9999", nil)
	c.Set(constants.ContextKeyUserID, suite.owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "9999"}}

	suite.handler.Delete(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestAttachmentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AttachmentHandlerTestSuite))
}
