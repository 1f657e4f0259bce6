package i18n

var english = map[string]string{
	// Error messages
	"error.invalid_request":      "Invalid request",
	"error.invalid_request_body": "Invalid request body",
	"error.internal_error":       "An unexpected error occurred",
	"error.unauthorized":         "Unauthorized",
	"error.api_key_required":     "API key is required",
	"error.invalid_api_key":      "Invalid API key",
	"error.forbidden":            "Forbidden",
	"error.not_found":            "Not found",
	"error.rate_limit_exceeded":  "Too many requests, please try again later",
	"error.conflict":             "Conflict",
	"error.invalid_token":        "Invalid or expired token",
	"error.token_required":       "Authentication token is required",
	"error.timeout":              "The request timed out",
	"error.request_in_progress":  "The same request is still being processed",
	"error.session_not_found":    "No scanning session is open for this transfer",
	"error.picking_not_found":    "Transfer not found",
	"error.picking_closed":       "The transfer is done or cancelled",
	"error.line_not_found":       "Line not found",
	"error.backend_unavailable":  "The warehouse database is unavailable, try again shortly",
	"error.invalid_quantity":     "quantity: must be a decimal number",

	// Scanner notifications
	"barcode.not_found":               "No record found for barcode {barcode}",
	"barcode.empty":                   "Empty barcode",
	"barcode.scan_product_first":      "Scan a product before scanning a package type",
	"barcode.package_already_scanned": "Package {package} has already been scanned",
	"barcode.empty_package_no_line":   "Package {package} is empty and there is no line to put in it",
	"barcode.packages_disabled":       "This transfer does not use packages",
	"barcode.nothing_to_pack":         "There is nothing to put in a pack",
	"barcode.incompatible_uom":        "Cannot convert {from} to {to}",
	"barcode.serial_already_scanned":  "Serial number {serial} has already been scanned",
	"barcode.serial_quantity":         "{product} is tracked by serial number, quantity cannot exceed 1",
	"barcode.invalid_quantity":        "Invalid quantity {quantity}",
	"barcode.location_not_allowed":    "Location {location} is not allowed for this transfer",
	"barcode.lots_disabled":           "{product} is not tracked by lots",
	"barcode.save_failed":             "Saving failed: {error}",
	"barcode.action_failed":           "{action} failed: {error}",
	"barcode.lookup_failed":           "Lookup failed: {error}",
	"barcode.saved":                   "Changes saved",
	"barcode.package_created":         "Lines put in a new pack",
	"barcode.package_type_changed":    "Package {package} is now a {package_type}",
	"barcode.package_attached":        "Package {package} set as destination",
	"barcode.destination_changed":     "Destination changed to {location}",
	"barcode.source_changed":          "Source changed to {location}",
	"barcode.picking_validated":       "Transfer {picking} validated",
	"barcode.picking_cancelled":       "Transfer {picking} cancelled",
	"barcode.line_removed":            "Line removed",
	"barcode.product_unknown":         "Unknown product",
	"barcode.package_type_unchanged":  "Package {package} is already a {package_type}",
}

var portuguese = map[string]string{
	// Error messages
	"error.invalid_request":      "Requisição inválida",
	"error.invalid_request_body": "Corpo da requisição inválido",
	"error.internal_error":       "Ocorreu um erro inesperado",
	"error.unauthorized":         "Não autorizado",
	"error.api_key_required":     "Chave de API é obrigatória",
	"error.invalid_api_key":      "Chave de API inválida",
	"error.forbidden":            "Proibido",
	"error.not_found":            "Não encontrado",
	"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
	"error.conflict":             "Conflito",
	"error.invalid_token":        "Token inválido ou expirado",
	"error.token_required":       "Token de autenticação é obrigatório",
	"error.timeout":              "A requisição expirou",
	"error.request_in_progress":  "A mesma requisição ainda está em processamento",
	"error.session_not_found":    "Nenhuma sessão de leitura aberta para esta transferência",
	"error.picking_not_found":    "Transferência não encontrada",
	"error.picking_closed":       "A transferência está concluída ou cancelada",
	"error.line_not_found":       "Linha não encontrada",
	"error.backend_unavailable":  "O banco de dados do armazém está indisponível, tente novamente em instantes",
	"error.invalid_quantity":     "quantity: deve ser um número decimal",

	// Scanner notifications
	"barcode.not_found":               "Nenhum registro encontrado para o código {barcode}",
	"barcode.empty":                   "Código de barras vazio",
	"barcode.scan_product_first":      "Leia um produto antes de ler um tipo de pacote",
	"barcode.package_already_scanned": "O pacote {package} já foi lido",
	"barcode.empty_package_no_line":   "O pacote {package} está vazio e não há linha para colocar nele",
	"barcode.packages_disabled":       "Esta transferência não usa pacotes",
	"barcode.nothing_to_pack":         "Não há nada para embalar",
	"barcode.incompatible_uom":        "Não é possível converter {from} em {to}",
	"barcode.serial_already_scanned":  "O número de série {serial} já foi lido",
	"barcode.serial_quantity":         "{product} é rastreado por número de série, a quantidade não pode passar de 1",
	"barcode.invalid_quantity":        "Quantidade inválida {quantity}",
	"barcode.location_not_allowed":    "O local {location} não é permitido nesta transferência",
	"barcode.lots_disabled":           "{product} não é rastreado por lotes",
	"barcode.save_failed":             "Falha ao salvar: {error}",
	"barcode.action_failed":           "{action} falhou: {error}",
	"barcode.lookup_failed":           "Falha na consulta: {error}",
	"barcode.saved":                   "Alterações salvas",
	"barcode.package_created":         "Linhas colocadas em um novo pacote",
	"barcode.package_type_changed":    "O pacote {package} agora é {package_type}",
	"barcode.package_attached":        "Pacote {package} definido como destino",
	"barcode.destination_changed":     "Destino alterado para {location}",
	"barcode.source_changed":          "Origem alterada para {location}",
	"barcode.picking_validated":       "Transferência {picking} validada",
	"barcode.picking_cancelled":       "Transferência {picking} cancelada",
	"barcode.line_removed":            "Linha removida",
	"barcode.product_unknown":         "Produto desconhecido",
	"barcode.package_type_unchanged":  "O pacote {package} já é {package_type}",
}

var dutch = map[string]string{
	// Error messages
	"error.invalid_request":      "Ongeldig verzoek",
	"error.invalid_request_body": "Ongeldige aanvraag body",
	"error.internal_error":       "Er is een onverwachte fout opgetreden",
	"error.unauthorized":         "Niet geautoriseerd",
	"error.api_key_required":     "API-sleutel is vereist",
	"error.invalid_api_key":      "Ongeldige API-sleutel",
	"error.forbidden":            "Verboden",
	"error.not_found":            "Niet gevonden",
	"error.rate_limit_exceeded":  "Te veel verzoeken, probeer het later opnieuw",
	"error.conflict":             "Conflict",
	"error.invalid_token":        "Ongeldig of verlopen token",
	"error.token_required":       "Authenticatietoken is vereist",
	"error.timeout":              "Het verzoek is verlopen",
	"error.request_in_progress":  "Hetzelfde verzoek wordt nog verwerkt",
	"error.session_not_found":    "Er is geen scansessie open voor deze overdracht",
	"error.picking_not_found":    "Overdracht niet gevonden",
	"error.picking_closed":       "De overdracht is voltooid of geannuleerd",
	"error.line_not_found":       "Regel niet gevonden",
	"error.backend_unavailable":  "De magazijndatabase is niet beschikbaar, probeer het zo opnieuw",
	"error.invalid_quantity":     "quantity: moet een decimaal getal zijn",

	// Scanner notifications
	"barcode.not_found":               "Geen record gevonden voor barcode {barcode}",
	"barcode.empty":                   "Lege barcode",
	"barcode.scan_product_first":      "Scan eerst een product voordat je een verpakkingstype scant",
	"barcode.package_already_scanned": "Verpakking {package} is al gescand",
	"barcode.empty_package_no_line":   "Verpakking {package} is leeg en er is geen regel om erin te doen",
	"barcode.packages_disabled":       "Deze overdracht gebruikt geen verpakkingen",
	"barcode.nothing_to_pack":         "Er is niets om in te pakken",
	"barcode.incompatible_uom":        "Kan {from} niet omrekenen naar {to}",
	"barcode.serial_already_scanned":  "Serienummer {serial} is al gescand",
	"barcode.serial_quantity":         "{product} wordt gevolgd per serienummer, de hoeveelheid mag niet boven 1 komen",
	"barcode.invalid_quantity":        "Ongeldige hoeveelheid {quantity}",
	"barcode.location_not_allowed":    "Locatie {location} is niet toegestaan voor deze overdracht",
	"barcode.lots_disabled":           "{product} wordt niet per partij gevolgd",
	"barcode.save_failed":             "Opslaan mislukt: {error}",
	"barcode.action_failed":           "{action} mislukt: {error}",
	"barcode.lookup_failed":           "Opzoeken mislukt: {error}",
	"barcode.saved":                   "Wijzigingen opgeslagen",
	"barcode.package_created":         "Regels in een nieuwe verpakking gedaan",
	"barcode.package_type_changed":    "Verpakking {package} is nu een {package_type}",
	"barcode.package_attached":        "Verpakking {package} ingesteld als bestemming",
	"barcode.destination_changed":     "Bestemming gewijzigd naar {location}",
	"barcode.source_changed":          "Bron gewijzigd naar {location}",
	"barcode.picking_validated":       "Overdracht {picking} gevalideerd",
	"barcode.picking_cancelled":       "Overdracht {picking} geannuleerd",
	"barcode.line_removed":            "Regel verwijderd",
	"barcode.product_unknown":         "Onbekend product",
	"barcode.package_type_unchanged":  "Verpakking {package} is al een {package_type}",
}
