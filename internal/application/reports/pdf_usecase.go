package reports

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

// PDFUseCase genera la nota de entrega imprimible de una solicitud: el
// comprobante que firma quien retira el material en bodega.
type PDFUseCase struct {
	requestRepo repository.RequestRepository
	issueRepo   repository.IssueRepository
	generator   IssueNotePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	requestRepo repository.RequestRepository,
	issueRepo repository.IssueRepository,
	generator IssueNotePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{requestRepo: requestRepo, issueRepo: issueRepo, generator: generator}
}

// DownloadIssueNotePDF carga la solicitud y sus asientos y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la solicitud no existe.
//   - domain.ErrInvalidInput    si la solicitud aún no tiene entregas registradas.
func (uc *PDFUseCase) DownloadIssueNotePDF(ctx context.Context, requestID string) (pdfBytes []byte, filename string, err error) {
	request, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener solicitud: %w", err)
	}
	if request == nil {
		return nil, "", domain.ErrNotFound
	}

	issues, err := uc.issueRepo.ListByRequest(requestID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener entregas: %w", err)
	}
	if len(issues) == 0 {
		return nil, "", fmt.Errorf("%w: la solicitud no tiene entregas registradas", domain.ErrInvalidInput)
	}

	pdfBytes, err = uc.generator.GenerateIssueNotePDF(ctx, request, issues)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("entrega_%s.pdf", request.ID)
	return pdfBytes, filename, nil
}
