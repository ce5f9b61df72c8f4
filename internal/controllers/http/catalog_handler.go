package http

import (
	"errors"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Ricky06202/tshirt-stryd/internal/infra/blob"
	"github.com/Ricky06202/tshirt-stryd/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCatalog(c *gin.Context) {
	cat, err := h.catalog.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) ListSizes(c *gin.Context) {
	sizes, err := h.catalog.AdminSizes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sizes)
}

func (h *Handler) CreateSize(c *gin.Context) {
	var req SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidData)
		return
	}
	size, err := h.catalog.CreateSize(c.Request.Context(), req.Talla.value(), req.Nombre.value())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "talla": size})
}

func (h *Handler) UpdateSize(c *gin.Context) {
	var req SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidData)
		return
	}
	id, err := parseID(req.ID.value())
	if err != nil {
		respondError(c, err)
		return
	}
	size, err := h.catalog.UpdateSize(c.Request.Context(), id, req.Talla.ptr(), req.Nombre.ptr())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "talla": size})
}

func (h *Handler) DeleteSize(c *gin.Context) {
	id, err := h.bodyID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.catalog.DeleteSize(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ListStyles(c *gin.Context) {
	styles, err := h.catalog.AdminStyles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, styles)
}

func (h *Handler) CreateStyle(c *gin.Context) {
	var req StyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errInvalidData)
		return
	}
	style, err := h.styles.Create(c.Request.Context(), req.fields())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "estilo": style})
}

// UpdateStyle takes JSON, or a multipart form when a replacement image is
// sent along with the fields.
func (h *Handler) UpdateStyle(c *gin.Context) {
	var (
		rawID  string
		fields services.StyleFields
		file   *services.ImageFile
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		rawID = c.PostForm("id")
		fields = services.StyleFields{
			Nombre: formValue(c, "nombre"),
			Estilo: formValue(c, "estilo"),
			Precio: formValue(c, "precio"),
			Imagen: formValue(c, "imagen"),
		}
		if fh, err := c.FormFile("file"); err == nil {
			f, closeFn, err := openUpload(fh)
			if err != nil {
				respondError(c, err)
				return
			}
			defer closeFn()
			file = f
		}
	} else {
		var req StyleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, errInvalidData)
			return
		}
		rawID = req.ID.value()
		fields = req.fields()
	}

	id, err := parseID(rawID)
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := h.styles.Update(c.Request.Context(), id, fields, file)
	if err != nil {
		respondError(c, err)
		return
	}
	body := gin.H{"success": true, "estilo": res.Style}
	if res.Warning != "" {
		body["warning"] = res.Warning
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) DeleteStyle(c *gin.Context) {
	id, err := h.bodyID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.styles.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, services.ErrMissingImage)
		return
	}
	file, closeFn, err := openUpload(fh)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeFn()

	res, err := h.styles.Upload(c.Request.Context(), file, services.StyleFields{
		Nombre: formValue(c, "nombre"),
		Estilo: formValue(c, "estilo"),
		Precio: formValue(c, "precio"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := UploadResponse{Success: true, Key: res.Key, Message: "Imagen subida correctamente"}
	if res.Style != nil {
		resp.Estilo = res.Style
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetImage(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.String(http.StatusBadRequest, "Image key is required")
		return
	}
	img, err := h.images.Open(c.Request.Context(), key, c.Query("size"))
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			c.String(http.StatusNotFound, "Image not found")
			return
		}
		log.Printf("serve image %s error: %v", key, err)
		c.String(http.StatusInternalServerError, "Error loading image")
		return
	}
	defer img.Body.Close()

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	size := img.Size
	if size <= 0 {
		size = -1
	}
	c.DataFromReader(http.StatusOK, size, img.ContentType, img.Body, nil)
}

// bodyID reads {id} from a JSON body, falling back to the id query
// parameter for clients that cannot send a DELETE body.
func (h *Handler) bodyID(c *gin.Context) (uint64, error) {
	var req struct {
		ID *looseString `json:"id"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			return 0, errInvalidData
		}
	}
	raw := req.ID.value()
	if raw == "" {
		raw = c.Query("id")
	}
	return parseID(raw)
}

func formValue(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

func openUpload(fh *multipart.FileHeader) (*services.ImageFile, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename))); byExt != "" {
			ct = byExt
		}
	}
	return &services.ImageFile{
		Filename:    fh.Filename,
		ContentType: ct,
		Body:        f,
	}, func() { f.Close() }, nil
}
